package service

import (
	"github.com/deppfellow/blog-service/internal/repository"
	"github.com/deppfellow/blog-service/internal/server"
)

// Services groups every service.
type Services struct {
	Entries *EntryService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		Entries: NewEntryService(repos.Entries, s.Logger),
	}
}
