package router

import (
	"net/http"

	"github.com/deppfellow/blog-service/internal/handler"
	"github.com/deppfellow/blog-service/internal/model"
	"github.com/labstack/echo/v4"
)

func registerEntryRoutes(r *echo.Echo, h *handler.Handlers) {
	entries := r.Group("/entries")

	entries.GET("", handler.HandleWithoutBody[model.ListEntriesRequest](h.Entries.Handler, h.Entries.ListEntries, http.StatusOK))
	entries.POST("", handler.Handle[model.Entry](h.Entries.Handler, h.Entries.CreateEntry, http.StatusOK))
}
