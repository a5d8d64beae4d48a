// Package middleware holds the global middleware and the error handler.
//
// These handle cross-cutting concerns: request ids, request-scoped
// logging, New Relic tracing, CORS, rate limiting, panic recovery and the
// translation of every error into the response envelope.
package middleware
