package repository

import (
	"context"
	"time"

	"github.com/deppfellow/blog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const (
	selectEntriesSQL = `SELECT created, title, author, text FROM blog_entry ORDER BY id`
	insertEntrySQL   = `INSERT INTO blog_entry (created, title, author, text) VALUES ($1, $2, $3, $4)`
)

// EntryRepository reads and writes the blog_entry table.
// It is safe for concurrent use; the pool behind db bounds concurrency.
type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// FetchAllEntries returns every entry in insertion order. An empty table
// yields an empty, non-nil slice.
func (r *EntryRepository) FetchAllEntries(ctx context.Context) ([]model.Entry, error) {
	entries := make([]model.Entry, 0)
	if err := r.db.SelectContext(ctx, &entries, selectEntriesSQL); err != nil {
		return nil, errors.Wrap(err, "fetching blog entries")
	}
	return entries, nil
}

// InsertEntry stores one entry. Arguments are bound in the fixed column
// order created, title, author, text.
func (r *EntryRepository) InsertEntry(ctx context.Context, created time.Time, title, author, text string) error {
	if _, err := r.db.ExecContext(ctx, insertEntrySQL, created, title, author, text); err != nil {
		return errors.Wrap(err, "inserting blog entry")
	}
	return nil
}
