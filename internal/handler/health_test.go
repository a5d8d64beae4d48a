package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/userapi/internal/testutil"
)

func checkHealth(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, h.CheckHealth(c))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestHealthHandler_NoDependencies(t *testing.T) {
	h := NewHealthHandler(testutil.NewTestServer(t))

	status, body := checkHealth(t, h)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.Empty(t, body["checks"])
}

func TestHealthHandler_OptionalFailureKeepsOK(t *testing.T) {
	h := NewHealthHandler(testutil.NewTestServer(t))
	h.AddCheck("database", true, func(context.Context) error { return nil })
	h.AddCheck("redis", false, func(context.Context) error { return errors.New("redis down") })

	status, body := checkHealth(t, h)

	assert.Equal(t, http.StatusOK, status)
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"].(map[string]any)["status"])

	redis := checks["redis"].(map[string]any)
	assert.Equal(t, "unhealthy", redis["status"])
	assert.Equal(t, "redis down", redis["error"])
}

func TestHealthHandler_RequiredFailure(t *testing.T) {
	h := NewHealthHandler(testutil.NewTestServer(t))
	h.AddCheck("database", true, func(context.Context) error { return errors.New("connection refused") })

	status, body := checkHealth(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])
}

func TestHealthHandler_CheckIsBoundedByTimeout(t *testing.T) {
	s := testutil.NewTestServer(t)
	s.Config.Observability.HealthChecks.Timeout = 50 * time.Millisecond
	h := NewHealthHandler(s)
	h.AddCheck("database", true, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	status, body := checkHealth(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	database := body["checks"].(map[string]any)["database"].(map[string]any)
	assert.Equal(t, context.DeadlineExceeded.Error(), database["error"])
}
