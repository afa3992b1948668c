package handler

import (
	"context"

	"github.com/deppfellow/blog-service/internal/model"
	"github.com/deppfellow/blog-service/internal/server"
	"github.com/labstack/echo/v4"
)

// CreatedResponse is the body returned by a successful create.
//
// TODO: return the stored entry once blog_entry exposes its id, so callers
// can tell which row was created.
const CreatedResponse = "created"

// EntryService is what EntryHandler needs from the service layer.
type EntryService interface {
	List(ctx context.Context) ([]model.Entry, error)
	Create(ctx context.Context, entry *model.Entry) error
}

// EntryHandler serves /entries.
type EntryHandler struct {
	Handler
	entries EntryService
}

func NewEntryHandler(s *server.Server, entries EntryService) *EntryHandler {
	return &EntryHandler{
		Handler: NewHandler(s),
		entries: entries,
	}
}

// ListEntries returns every entry in insertion order.
func (h *EntryHandler) ListEntries(c echo.Context, _ *model.ListEntriesRequest) ([]model.Entry, error) {
	return h.entries.List(c.Request().Context())
}

// CreateEntry stores an already decoded and validated entry.
func (h *EntryHandler) CreateEntry(c echo.Context, entry *model.Entry) (string, error) {
	if err := h.entries.Create(c.Request().Context(), entry); err != nil {
		return "", err
	}
	return CreatedResponse, nil
}
