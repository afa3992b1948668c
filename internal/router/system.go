package router

import (
	"github.com/deppfellow/blog-service/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the
// blog entries API: health, docs, and the embedded static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", echo.MustSubFS(handler.Static, "static"))

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
