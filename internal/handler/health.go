package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/userapi/internal/middleware"
	"github.com/deppfellow/userapi/internal/server"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// HealthHandler reports whether the service and its dependencies are up.
//
// Checks named in requiredChecks make the endpoint answer 503 when they
// fail; the others are reported but do not change the status.
type HealthHandler struct {
	Handler
	checks         map[string]HealthCheck
	requiredChecks map[string]bool
}

// NewHealthHandler registers the checks enabled in the observability
// config. Redis is informational only: the API keeps serving without it.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler:        NewHandler(s),
		checks:         map[string]HealthCheck{},
		requiredChecks: map[string]bool{},
	}

	obs := s.Config.Observability
	if obs.HasCheck("database") && s.DB != nil {
		h.AddCheck("database", true, func(ctx context.Context) error {
			return s.DB.Pool.Ping(ctx)
		})
	}
	if obs.HasCheck("redis") && s.Redis != nil {
		h.AddCheck("redis", false, func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		})
	}

	return h
}

// AddCheck registers a named dependency check.
func (h *HealthHandler) AddCheck(name string, required bool, check HealthCheck) {
	h.checks[name] = check
	h.requiredChecks[name] = required
}

// CheckHealth answers 200 when every required check passes, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	timeout := h.server.Config.Observability.HealthChecks.Timeout
	checks := make(map[string]any, len(h.checks))
	isHealthy := true

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		checkStart := time.Now()
		err := h.checks[name](ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err == nil {
			checks[name] = map[string]any{
				"status":        "healthy",
				"response_time": elapsed.String(),
			}
			logger.Debug().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
			continue
		}

		checks[name] = map[string]any{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}
		if h.requiredChecks[name] {
			isHealthy = false
		}

		logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")
		h.recordFailure(name, elapsed, err)
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
