// Package router builds the echo instance: global middleware, the error
// handler and every route.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/userapi/internal/handler"
	"github.com/deppfellow/userapi/internal/middleware"
	"github.com/deppfellow/userapi/internal/server"
)

// NewRouter wires middleware in order: tracing first so the transaction
// exists for the logger, request id before the context enhancer, the rate
// limiter after it so denials are logged with request fields.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limiter())
	}

	registerSystemRoutes(router, h)
	registerUserRoutes(router, h)

	return router
}
