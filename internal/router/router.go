// Package router initializes the HTTP router (echo).
//
// It registers the middlewares and maps paths to their handlers.
package router

import (
	"github.com/deppfellow/blog-service/internal/handler"
	"github.com/deppfellow/blog-service/internal/middleware"
	"github.com/deppfellow/blog-service/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the echo instance with the full middleware stack.
//
// Order matters: the request id must exist before the context logger is
// built, and the New Relic transaction before the logger reads trace ids.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Metrics.Instrument(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	router.GET(middleware.MetricsPath, echo.WrapHandler(middlewares.Metrics.Handler()))

	registerSystemRoutes(router, h)
	registerEntryRoutes(router, h)

	return router
}
