package handler

import (
	"embed"
	"net/http"

	"github.com/deppfellow/blog-service/internal/server"
	"github.com/labstack/echo/v4"
)

// Static holds the OpenAPI document and UI page.
//
//go:embed static/openapi.html static/openapi.json
var Static embed.FS

// OpenAPIHandler serves the OpenAPI UI for trying the API.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves static/openapi.html, uncached so doc changes show
// up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := Static.ReadFile("static/openapi.html")
	if err != nil {
		return err
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
