package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*EntryRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewEntryRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestFetchAllEntries(t *testing.T) {
	repo, mock := newMockRepository(t)

	first := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"created", "title", "author", "text"}).
		AddRow(first, "First entry title", "a@example.com", "First entry text").
		AddRow(second, "Second entry title", "b@example.com", "Second entry text")
	mock.ExpectQuery(selectEntriesSQL).WillReturnRows(rows)

	entries, err := repo.FetchAllEntries(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Created.Equal(first))
	assert.Equal(t, "First entry title", entries[0].Title)
	assert.Equal(t, "b@example.com", entries[1].Author)
	assert.Equal(t, "Second entry text", entries[1].Text)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchAllEntries_Empty(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(selectEntriesSQL).
		WillReturnRows(sqlmock.NewRows([]string{"created", "title", "author", "text"}))

	entries, err := repo.FetchAllEntries(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFetchAllEntries_Error(t *testing.T) {
	repo, mock := newMockRepository(t)

	dbErr := errors.New("connection refused")
	mock.ExpectQuery(selectEntriesSQL).WillReturnError(dbErr)

	entries, err := repo.FetchAllEntries(context.Background())

	assert.Nil(t, entries)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "fetching blog entries")
}

func TestInsertEntry(t *testing.T) {
	repo, mock := newMockRepository(t)

	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	mock.ExpectExec(insertEntrySQL).
		WithArgs(created, "A title long enough", "writer@example.com", "Some body text.").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.InsertEntry(context.Background(), created, "A title long enough", "writer@example.com", "Some body text.")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertEntry_Error(t *testing.T) {
	repo, mock := newMockRepository(t)

	dbErr := errors.New("relation \"blog_entry\" does not exist")
	mock.ExpectExec(insertEntrySQL).WillReturnError(dbErr)

	err := repo.InsertEntry(context.Background(), time.Now(), "A title long enough", "a@b.com", "0123456789")

	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "inserting blog entry")
}
