package repository

import (
	"github.com/deppfellow/blog-service/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Entries *EntryRepository
}

// NewRepositories builds every repository on the server's database handle.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Entries: NewEntryRepository(s.DB.DB),
	}
}
