package sqlerr

import (
	"errors"
	"testing"

	"github.com/deppfellow/blog-service/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_Nil(t *testing.T) {
	assert.NoError(t, HandleError(nil))
}

func TestHandleError_PgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:  "ERROR",
		Code:      "23505",
		Message:   "duplicate key value violates unique constraint \"blog_entry_id_idx\"",
		TableName: "blog_entry",
	}
	err := pkgerrors.Wrap(pgErr, "inserting blog entry")

	handled := HandleError(err)

	var storageErr *errs.StorageError
	require.True(t, errors.As(handled, &storageErr))
	assert.Equal(t, "BLOG_ENTRY_ALREADY_EXISTS", storageErr.Code)
	assert.Contains(t, storageErr.Error(), "inserting blog entry")
	assert.Contains(t, storageErr.Error(), "duplicate key value")
	assert.Equal(t, UniqueViolation, ErrCode(handled))

	httpErr := errs.ToHTTPError(handled)
	assert.Equal(t, pgErr.Error(), httpErr.Message)
	assert.NotContains(t, httpErr.Message, "inserting blog entry")
}

func TestHandleError_UndefinedTable(t *testing.T) {
	pgErr := &pgconn.PgError{Severity: "ERROR", Code: "42P01", Message: "relation \"blog_entry\" does not exist"}

	var storageErr *errs.StorageError
	require.True(t, errors.As(HandleError(pgErr), &storageErr))
	assert.Equal(t, "RECORD_SCHEMA_MISSING", storageErr.Code)
}

func TestHandleError_NonDriverError(t *testing.T) {
	handled := HandleError(errors.New("closed pool"))

	var storageErr *errs.StorageError
	require.True(t, errors.As(handled, &storageErr))
	assert.Equal(t, errs.CodeStorageError, storageErr.Code)
	assert.Equal(t, "closed pool", storageErr.Error())
	assert.Equal(t, Other, ErrCode(handled))
}

func TestHandleError_AlreadyMapped(t *testing.T) {
	httpErr := errs.NewInternalServerError()
	assert.Same(t, httpErr, HandleError(httpErr))

	storageErr := &errs.StorageError{Code: "X", Err: errors.New("x")}
	assert.Same(t, storageErr, HandleError(storageErr))
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("XX000"))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("ERROR"))
	assert.Equal(t, SeverityError, MapSeverity("something else"))
}

func TestGenerateErrorCode(t *testing.T) {
	tests := []struct {
		table string
		code  Code
		want  string
	}{
		{"blog_entry", NotNullViolation, "BLOG_ENTRY_REQUIRED"},
		{"blog_entry", CheckViolation, "BLOG_ENTRY_INVALID"},
		{"users", ForeignKeyViolation, "USER_NOT_FOUND"},
		{"", Other, "RECORD_ERROR"},
		{"blog_entry", TooManyConnections, "BLOG_ENTRY_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, generateErrorCode(tt.table, tt.code))
		})
	}
}

func TestConvertPgErrorUnwraps(t *testing.T) {
	pgErr := &pgconn.PgError{Severity: "ERROR", Code: "23502", ColumnName: "title"}

	converted := ConvertPgError(pgErr)

	assert.Equal(t, NotNullViolation, converted.Code)
	assert.Equal(t, "title", converted.ColumnName)
	assert.ErrorIs(t, converted, pgErr)
}
