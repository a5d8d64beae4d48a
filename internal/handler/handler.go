// Package handler is the HTTP layer behind the router.
//
// Handlers receive requests already bound and validated by the shared
// pipeline in base.go, call the service layer and return the response
// envelope. Errors are returned untouched for the global error handler.
package handler
