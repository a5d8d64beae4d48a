// Package errs defines custom error types and utilities.
//
// Its purpose is to create specific error structures
// (FieldError for request validation, HTTPError for API responses)
// so every failure reaches the client as the same
// `{success:false, message}` envelope with a meaningful status.
package errs
