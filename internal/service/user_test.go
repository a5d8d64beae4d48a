package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/userapi/internal/errs"
	"github.com/deppfellow/userapi/internal/model/user"
	"github.com/deppfellow/userapi/internal/sqlerr"
	"github.com/deppfellow/userapi/internal/testutil"
)

func newContext() echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func requireHTTPError(t *testing.T, err error, status int, message string) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
	return httpErr
}

func createRequest() *user.CreateUserRequest {
	return &user.CreateUserRequest{
		UserID:      "user123444",
		Name:        "Ann Example",
		Email:       "ann@example.com",
		PhoneNumber: "0123456789",
	}
}

func ptr(s string) *string { return &s }

func TestUserService_CreateUser(t *testing.T) {
	store := testutil.NewMemoryUserStore()
	jobs := &testutil.RecordingEnqueuer{}
	svc := NewUserService(store, jobs)

	created, err := svc.CreateUser(newContext(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, user.DefaultRemainingChats, created.RemainingChats)
	require.Len(t, jobs.Users, 1)
	assert.Equal(t, "ann@example.com", jobs.Users[0].Email)
}

func TestUserService_CreateUser_EnqueueFailureIsIgnored(t *testing.T) {
	store := testutil.NewMemoryUserStore()
	jobs := &testutil.RecordingEnqueuer{Err: errors.New("redis: connection refused")}
	svc := NewUserService(store, jobs)

	_, err := svc.CreateUser(newContext(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestUserService_CreateUser_WithoutQueue(t *testing.T) {
	svc := NewUserService(testutil.NewMemoryUserStore(), nil)

	_, err := svc.CreateUser(newContext(), createRequest())
	assert.NoError(t, err)
}

func TestUserService_CreateUser_Conflicts(t *testing.T) {
	store := testutil.NewMemoryUserStore()
	svc := NewUserService(store, nil)
	_, err := svc.CreateUser(newContext(), createRequest())
	require.NoError(t, err)

	_, err = svc.CreateUser(newContext(), createRequest())
	httpErr := requireHTTPError(t, err, http.StatusConflict, MsgUserIDTaken)
	assert.Equal(t, codeUserIDTaken, httpErr.Code)

	req := createRequest()
	req.UserID = "user999999"
	_, err = svc.CreateUser(newContext(), req)
	httpErr = requireHTTPError(t, err, http.StatusConflict, MsgEmailTaken)
	assert.Equal(t, codeEmailTaken, httpErr.Code)
}

func TestUserService_CreateUser_StoreFailure(t *testing.T) {
	store := testutil.NewMemoryUserStore()
	store.Err = errors.New("pool closed")
	svc := NewUserService(store, nil)

	_, err := svc.CreateUser(newContext(), createRequest())
	requireHTTPError(t, err, http.StatusInternalServerError, MsgFailedCreateUser)
}

func TestUserService_GetUser(t *testing.T) {
	store := testutil.NewMemoryUserStore()
	svc := NewUserService(store, nil)

	_, err := svc.GetUser(newContext(), "user123444")
	requireHTTPError(t, err, http.StatusNotFound, MsgUserNotFound)

	_, err = svc.CreateUser(newContext(), createRequest())
	require.NoError(t, err)

	got, err := svc.GetUser(newContext(), "user123444")
	require.NoError(t, err)
	assert.Equal(t, "Ann Example", got.Name)

	store.Err = errors.New("timeout")
	_, err = svc.GetUser(newContext(), "user123444")
	requireHTTPError(t, err, http.StatusInternalServerError, MsgFailedFetchUser)
}

func TestUserService_UpdateUser(t *testing.T) {
	store := testutil.NewMemoryUserStore()
	svc := NewUserService(store, nil)
	_, err := svc.CreateUser(newContext(), createRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateUser(newContext(), &user.UpdateUserRequest{
		UserID:      "user123444",
		PhoneNumber: ptr("9998887776"),
	})
	require.NoError(t, err)
	assert.Equal(t, "9998887776", updated.PhoneNumber)
	assert.Equal(t, "Ann Example", updated.Name)

	_, err = svc.UpdateUser(newContext(), &user.UpdateUserRequest{UserID: "nobody0000", Name: ptr("Ghost")})
	requireHTTPError(t, err, http.StatusNotFound, MsgUserNotFound)
}

func TestUserService_DeleteUser(t *testing.T) {
	store := testutil.NewMemoryUserStore()
	svc := NewUserService(store, nil)
	_, err := svc.CreateUser(newContext(), createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(newContext(), "user123444"))
	requireHTTPError(t, svc.DeleteUser(newContext(), "user123444"), http.StatusNotFound, MsgUserNotFound)
}

func TestUserService_DeleteUser_RemovedConcurrently(t *testing.T) {
	store := testutil.NewMemoryUserStore()
	svc := NewUserService(store, nil)
	_, err := svc.CreateUser(newContext(), createRequest())
	require.NoError(t, err)

	store.BeforeDelete = func() { store.Remove("user123444") }

	requireHTTPError(t, svc.DeleteUser(newContext(), "user123444"), http.StatusNotFound, MsgUserNotFound)
}

func TestUniqueConflict(t *testing.T) {
	assert.Nil(t, uniqueConflict(errors.New("boom")))
	assert.Nil(t, uniqueConflict(&sqlerr.Error{Code: sqlerr.ForeignKeyViolation}))

	httpErr := uniqueConflict(sqlerr.NewUniqueViolation("users", "phone_number"))
	require.NotNil(t, httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "User already exists", httpErr.Message)
}
