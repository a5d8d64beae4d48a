package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/deppfellow/userapi/internal/errs"
	"github.com/deppfellow/userapi/internal/server"
)

// RateLimitMiddleware limits requests per client IP and reports denials to
// New Relic.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Enabled reports whether a limit is configured.
func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimit > 0
}

// Limiter returns the echo in-memory rate limiter configured from
// Server.RateLimit (requests per second) and Server.RateLimitBurst.
func (r *RateLimitMiddleware) Limiter() echo.MiddlewareFunc {
	cfg := r.server.Config.Server

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(cfg.RateLimit),
		Burst: cfg.RateLimitBurst,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Unable to identify client", false, nil, nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("client", identifier).Msg("rate limit exceeded")
			return &errs.HTTPError{
				Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
				Message: "Too many requests",
				Status:  http.StatusTooManyRequests,
			}
		},
	})
}

// RecordRateLimitHit records a RateLimitHit custom event in New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("RateLimitHit", map[string]any{
			"endpoint": endpoint,
		})
	}
}
