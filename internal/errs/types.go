package errs

import (
	"net/http"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is optional (nil means "BAD_REQUEST"); errors carries the ordered
// validation violations, if any.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewConflictError creates a 409 Conflict HTTPError, used when a unique
// value is already taken.
func NewConflictError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusConflict)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusConflict,
		Override: override,
	}
}

// NewInternalServerError creates a 500 with the generic status text.
// The real cause stays in the logs.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewInternalServerErrorWithMessage creates a 500 carrying a fixed,
// non-sensitive message such as "Failed to create user".
func NewInternalServerErrorWithMessage(message string) *HTTPError {
	return NewInternalServerError().WithMessage(message)
}

// ValidationError converts a list of violations into a 400.
//
// The message is the first violation so that it is what clients see.
func ValidationError(violations []FieldError) *HTTPError {
	message := "Validation failed"
	if len(violations) > 0 {
		message = violations[0].Error
	}
	return NewBadRequestError(message, true, nil, violations)
}
