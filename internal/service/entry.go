package service

import (
	"context"
	"time"

	"github.com/deppfellow/blog-service/internal/model"
	"github.com/deppfellow/blog-service/internal/sqlerr"
	"github.com/rs/zerolog"
)

// EntryStore is the storage collaborator for blog entries.
type EntryStore interface {
	FetchAllEntries(ctx context.Context) ([]model.Entry, error)
	InsertEntry(ctx context.Context, created time.Time, title, author, text string) error
}

// EntryService implements listing and creating entries.
// It holds no mutable state and is safe for concurrent use.
type EntryService struct {
	store  EntryStore
	logger *zerolog.Logger
}

func NewEntryService(store EntryStore, logger *zerolog.Logger) *EntryService {
	return &EntryService{
		store:  store,
		logger: logger,
	}
}

// List returns all entries in insertion order, never nil. A storage
// failure is returned as *errs.StorageError.
func (s *EntryService) List(ctx context.Context) ([]model.Entry, error) {
	entries, err := s.store.FetchAllEntries(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries, nil
}

// Create stores a validated entry. No retry is attempted: a storage
// failure is returned immediately as *errs.StorageError.
func (s *EntryService) Create(ctx context.Context, entry *model.Entry) error {
	if err := s.store.InsertEntry(ctx, entry.Created, entry.Title, entry.Author, entry.Text); err != nil {
		return sqlerr.HandleError(err)
	}

	s.logger.Debug().
		Str("author", entry.Author).
		Time("created", entry.Created).
		Msg("blog entry stored")

	return nil
}
