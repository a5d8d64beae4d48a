package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/userapi/internal/errs"
)

type signupPayload struct {
	Handle string  `json:"handle" validate:"required,len=5"`
	Email  string  `json:"email" validate:"required,email"`
	Phone  string  `json:"phone" validate:"required,len=4,number"`
	Bio    *string `json:"bio" validate:"omitnil,min=1"`
}

func (p *signupPayload) Validate() error {
	return Struct(p)
}

type pathPayload struct {
	ID string `param:"id" validate:"required"`
}

func (p *pathPayload) Validate() error {
	return Struct(p)
}

func newContext(method, body string) echo.Context {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidate_Success(t *testing.T) {
	var p signupPayload
	err := BindAndValidate(newContext(http.MethodPost, `{"handle":"abcde","email":"a@b.co","phone":"1234"}`), &p)

	require.NoError(t, err)
	assert.Equal(t, "abcde", p.Handle)
	assert.Nil(t, p.Bio)
}

func TestBindAndValidate_FirstViolationWins(t *testing.T) {
	var p signupPayload
	err := BindAndValidate(newContext(http.MethodPost, `{"handle":"abc","email":"invalid-email","phone":"12"}`), &p)

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "handle must be exactly 5 characters", httpErr.Message)
	require.Len(t, httpErr.Errors, 3)
	assert.Equal(t, "handle", httpErr.Errors[0].Field)
	assert.Equal(t, "email", httpErr.Errors[1].Field)
	assert.Equal(t, "phone", httpErr.Errors[2].Field)
}

func TestBindAndValidate_Messages(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "required", body: `{"email":"a@b.co","phone":"1234"}`, want: "handle is required"},
		{name: "email", body: `{"handle":"abcde","email":"nope","phone":"1234"}`, want: "email must be a valid email address"},
		{name: "digits", body: `{"handle":"abcde","email":"a@b.co","phone":"12a4"}`, want: "phone must contain only digits"},
		{name: "signed number is not digits", body: `{"handle":"abcde","email":"a@b.co","phone":"+123"}`, want: "phone must contain only digits"},
		{name: "length before digits", body: `{"handle":"abcde","email":"a@b.co","phone":"12a"}`, want: "phone must be exactly 4 characters"},
		{name: "present but empty", body: `{"handle":"abcde","email":"a@b.co","phone":"1234","bio":""}`, want: "bio cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p signupPayload
			httpErr := requireHTTPError(t, BindAndValidate(newContext(http.MethodPost, tt.body), &p))
			assert.Equal(t, tt.want, httpErr.ClientMessage())
		})
	}
}

func TestBindAndValidate_UndecodableBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "truncated json", body: `{"handle":`, want: MsgInvalidBody},
		{name: "array instead of object", body: `[1,2]`, want: MsgInvalidBody},
		{name: "number for a string field", body: `{"handle":12345,"email":"a@b.co","phone":"1234"}`, want: "handle must be a string"},
		{name: "object for a string field", body: `{"handle":"abcde","email":{"a":1},"phone":"1234"}`, want: "email must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p signupPayload
			httpErr := requireHTTPError(t, BindAndValidate(newContext(http.MethodPost, tt.body), &p))

			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, tt.want, httpErr.Message)
			assert.Empty(t, httpErr.Errors)
			assert.NotContains(t, httpErr.Message, "offset")
			assert.NotContains(t, httpErr.Message, "signupPayload")
		})
	}
}

func TestBindAndValidate_PathParamName(t *testing.T) {
	c := newContext(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("")

	var p pathPayload
	httpErr := requireHTTPError(t, BindAndValidate(c, &p))
	assert.Equal(t, "id is required", httpErr.Message)
}

func TestExtractViolations_Custom(t *testing.T) {
	got := ExtractViolations(CustomValidationErrors{
		{Field: "name", Message: "first"},
		{Field: "email", Message: "second"},
	})

	assert.Equal(t, []errs.FieldError{
		{Field: "name", Error: "first"},
		{Field: "email", Error: "second"},
	}, got)
}

func TestExtractViolations_UnknownError(t *testing.T) {
	got := ExtractViolations(errors.New("something odd"))
	require.Len(t, got, 1)
	assert.Equal(t, "something odd", got[0].Error)
}
