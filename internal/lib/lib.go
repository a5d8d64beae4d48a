// Package lib groups the integrations that do not fit strictly into the
// handler, service or repository layers.
//
// It contains background job processing (Redis/Asynq), the Resend email
// client and the Gemini client behind the /LLM passthrough.
package lib
