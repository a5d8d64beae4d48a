package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/userapi/internal/handler"
)

// registerSystemRoutes registers the endpoints outside the user resource:
// greeting, database probe, LLM passthrough, health and docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", handler.HandleText(h.System.Handler, h.System.Root))
	r.GET("/checkDbConn", handler.Handle(h.System.Handler, h.System.CheckDBConn, http.StatusOK))
	r.GET("/LLM", handler.Handle(h.System.Handler, h.System.GenerateContent, http.StatusOK))

	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
