package errs

import "strings"

// FieldError represents a single violated validation rule.
//
//	{ "field": "email", "error": "email must be a valid email address" }
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "userID").
	Field string `json:"field"`

	// Error is the human-readable message shown to the client.
	Error string `json:"error"`
}

// HTTPError is the custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "USER_ALREADY_EXISTS").
//   - Message: human-friendly message, becomes the envelope message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show verbatim to end users.
//   - Errors: ordered list of validation violations.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, &HTTPError{}) match any *HTTPError, regardless of
// Code/Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// ClientMessage is the message written into the response envelope.
//
// Validation failures only surface their first violation; callers must
// not rely on receiving the complete list.
func (e *HTTPError) ClientMessage() string {
	if len(e.Errors) > 0 {
		return e.Errors[0].Error
	}
	return e.Message
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
// Used to derive stable machine-readable codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
