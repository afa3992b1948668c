package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/blog-service/internal/config"
	"github.com/deppfellow/blog-service/internal/errs"
	"github.com/deppfellow/blog-service/internal/handler"
	"github.com/deppfellow/blog-service/internal/middleware"
	"github.com/deppfellow/blog-service/internal/model"
	"github.com/deppfellow/blog-service/internal/server"
	"github.com/deppfellow/blog-service/internal/service"
	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type insertCall struct {
	created time.Time
	title   string
	author  string
	text    string
}

// memoryStore records inserts and serves a fixed list.
type memoryStore struct {
	mu        sync.Mutex
	entries   []model.Entry
	fetchErr  error
	insertErr error
	inserts   []insertCall
}

func (m *memoryStore) FetchAllEntries(ctx context.Context) ([]model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries, m.fetchErr
}

func (m *memoryStore) InsertEntry(ctx context.Context, created time.Time, title, author, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts = append(m.inserts, insertCall{created, title, author, text})
	return m.insertErr
}

func newTestRouter(t *testing.T, store service.EntryStore, configure func(cfg *config.Config)) *echo.Echo {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Observability.HealthChecks.Enabled = false
	if configure != nil {
		configure(cfg)
	}

	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	services := &service.Services{Entries: service.NewEntryService(store, &logger)}
	return NewRouter(s, handler.NewHandlers(s, services))
}

func do(r *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var httpErr errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
	return httpErr
}

func TestListEntries_Empty(t *testing.T) {
	r := newTestRouter(t, &memoryStore{}, nil)

	rec := do(r, http.MethodGet, "/entries", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListEntries_ReturnsEntries(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 500, time.UTC)
	store := &memoryStore{entries: []model.Entry{{
		Created: created,
		Title:   "A title long enough",
		Author:  "writer@example.com",
		Text:    "Some body text.",
	}}}
	r := newTestRouter(t, store, nil)

	rec := do(r, http.MethodGet, "/entries", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"created": "2024-03-01T12:00:00.0000005Z",
		"title": "A title long enough",
		"author": "writer@example.com",
		"text": "Some body text."
	}]`, rec.Body.String())
}

func TestListEntries_StorageFailure(t *testing.T) {
	store := &memoryStore{fetchErr: pkgerrors.Wrap(errors.New("could not connect to server"), "fetching blog entries")}
	r := newTestRouter(t, store, nil)

	rec := do(r, http.MethodGet, "/entries", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	httpErr := decodeError(t, rec)
	assert.Equal(t, "could not connect to server", httpErr.Message)
	assert.Equal(t, errs.CodeStorageError, httpErr.Code)
}

func TestCreateEntry_Valid(t *testing.T) {
	store := &memoryStore{}
	r := newTestRouter(t, store, nil)

	body := `{"created":"2024-03-01T12:00:00Z","title":"twenty characters ok","author":"a@b.com","text":"fifteen chars!!"}`
	rec := do(r, http.MethodPost, "/entries", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"created"`, rec.Body.String())

	require.Len(t, store.inserts, 1)
	call := store.inserts[0]
	assert.True(t, call.created.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "twenty characters ok", call.title)
	assert.Equal(t, "a@b.com", call.author)
	assert.Equal(t, "fifteen chars!!", call.text)
}

func TestCreateEntry_ZeroCreatedIsValid(t *testing.T) {
	store := &memoryStore{}
	r := newTestRouter(t, store, nil)

	body := `{"created":"0001-01-01T00:00:00Z","title":"twenty characters ok","author":"a@b.com","text":"fifteen chars!!"}`
	rec := do(r, http.MethodPost, "/entries", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `"created"`, rec.Body.String())
	require.Len(t, store.inserts, 1)
	assert.True(t, store.inserts[0].created.IsZero())
}

func TestCreateEntry_StorageFailure(t *testing.T) {
	store := &memoryStore{
		insertErr: pkgerrors.Wrap(errors.New("relation \"blog_entry\" does not exist"), "inserting blog entry"),
	}
	r := newTestRouter(t, store, nil)

	body := `{"created":"2024-03-01T12:00:00Z","title":"twenty characters ok","author":"a@b.com","text":"fifteen chars!!"}`
	rec := do(r, http.MethodPost, "/entries", body)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	httpErr := decodeError(t, rec)
	assert.Equal(t, errs.CodeStorageError, httpErr.Code)
	assert.Equal(t, `relation "blog_entry" does not exist`, httpErr.Message)
	// No retry.
	assert.Len(t, store.inserts, 1)
}

func TestCreateEntry_ShortTitle(t *testing.T) {
	store := &memoryStore{}
	r := newTestRouter(t, store, nil)

	body := `{"created":"2024-03-01T12:00:00Z","title":"short","author":"a@b.com","text":"fifteen chars!!"}`
	rec := do(r, http.MethodPost, "/entries", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	httpErr := decodeError(t, rec)
	assert.Equal(t, errs.CodeValidationFailed, httpErr.Code)
	assert.Contains(t, httpErr.Message, "title")
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
	assert.Empty(t, store.inserts)
}

func TestCreateEntry_DecodeFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"created":`},
		{"missing text", `{"created":"2024-03-01T12:00:00Z","title":"twenty characters ok","author":"a@b.com"}`},
		{"wrong type", `{"created":"2024-03-01T12:00:00Z","title":["x"],"author":"a@b.com","text":"fifteen chars!!"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &memoryStore{}
			r := newTestRouter(t, store, nil)

			rec := do(r, http.MethodPost, "/entries", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, errs.CodeInvalidRequestBody, decodeError(t, rec).Code)
			assert.Empty(t, store.inserts)
		})
	}
}

func TestCreateEntry_WrongContentType(t *testing.T) {
	r := newTestRouter(t, &memoryStore{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/entries", strings.NewReader("title=x"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errs.CodeInvalidRequestBody, decodeError(t, rec).Code)
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, &memoryStore{}, nil)

	rec := do(r, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t, &memoryStore{}, nil)

	rec := do(r, http.MethodGet, "/entries", "")
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, &memoryStore{}, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
	})

	first := do(r, http.MethodGet, "/entries", "")
	second := do(r, http.MethodGet, "/entries", "")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestStatus_ChecksDisabled(t *testing.T) {
	r := newTestRouter(t, &memoryStore{}, nil)

	rec := do(r, http.MethodGet, "/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "local", body["environment"])
}

func TestDocs(t *testing.T) {
	r := newTestRouter(t, &memoryStore{}, nil)

	rec := do(r, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)

	rec = do(r, http.MethodGet, "/static/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/entries")
}

func TestMetrics(t *testing.T) {
	r := newTestRouter(t, &memoryStore{}, nil)

	do(r, http.MethodGet, "/entries", "")
	do(r, http.MethodPost, "/entries", `{"created":`)

	rec := do(r, http.MethodGet, middleware.MetricsPath, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `blog_http_requests_total{method="GET",path="/entries",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `blog_http_requests_total{method="POST",path="/entries",status="400"} 1`)
}
