package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/deppfellow/userapi/internal/errs"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email"`)
//   - Implement Validate() error that calls validation.Struct(req)
//   - Append CustomValidationErrors for rules tags cannot express
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue that cannot be
// expressed via validator tags (e.g. cross-field rules).
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	if len(c) > 0 {
		return c[0].Message
	}
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from path params, query and body.
//  2. payload.Validate() applies the rules.
//  3. Any failure becomes a 400 *errs.HTTPError whose message is the first
//     violation.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		zerolog.Ctx(c.Request().Context()).Warn().Err(err).Msg("failed to bind request")
		return errs.NewBadRequestError(bindErrorMessage(err), false, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		return errs.ValidationError(ExtractViolations(err))
	}

	return nil
}

// MsgInvalidBody is the client message for bodies that cannot be decoded.
const MsgInvalidBody = "Invalid request body"

// bindErrorMessage turns a binder failure into a client message. Decoder
// details (Go types, byte offsets) stay in the log; only a mistyped field
// is named.
func bindErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s must be %s", typeErr.Field, jsonKind(typeErr.Type))
	}
	return MsgInvalidBody
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}

// ExtractViolations converts a Validate() error into ordered field errors.
func ExtractViolations(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fe.Field(),
				Error: messageFor(fe),
			})
		}
		return fieldErrors
	}

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, ce := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return fieldErrors
	}

	return []errs.FieldError{{Error: err.Error()}}
}

// messageFor renders a human-readable message for one violated tag.
func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)

	case "len":
		if isString {
			return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must have exactly %s items", field, fe.Param())

	case "min":
		// min means minimum length for strings, minimum value for numbers.
		if isString {
			if fe.Param() == "1" {
				return fmt.Sprintf("%s cannot be empty", field)
			}
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())

	case "max":
		if isString {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())

	case "number", "numeric":
		return fmt.Sprintf("%s must contain only digits", field)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())

	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)

	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", field, fe.Tag())
	}
}
