// Package handler is the entry point for business logic after the router.
//
// It decodes and validates requests through the validation package,
// calls the service layer, and writes responses. Failures are returned
// as errors for the global error handler to map.
package handler

import (
	"github.com/deppfellow/blog-service/internal/server"
	"github.com/deppfellow/blog-service/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Entries *EntryHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Entries: NewEntryHandler(s, services.Entries),
	}
}
