// Package model holds the data shapes shared by the handler, service and
// repository layers: stored entities, request payloads and the response
// envelope every endpoint answers with.
package model

// Response is the envelope used by every JSON endpoint.
//
// Message is either a human-readable string or the payload itself
// (a user, a list of users, a list of table names).
type Response struct {
	Success bool `json:"success"`
	Message any  `json:"message"`
}

// ResultResponse is the envelope of the legacy list endpoint, which puts the
// payload under "result" instead of "message".
type ResultResponse struct {
	Success bool `json:"success"`
	Result  any  `json:"result"`
}

// OK wraps msg in a successful envelope.
func OK(msg any) Response {
	return Response{Success: true, Message: msg}
}

// Fail wraps msg in a failed envelope.
func Fail(msg string) Response {
	return Response{Success: false, Message: msg}
}

// EmptyRequest is the payload of endpoints that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}
