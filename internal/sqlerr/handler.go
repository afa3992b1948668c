package sqlerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/blog-service/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrCode reports the mapped Code for a given error.
//
// If err can be unwrapped into *Error or *pgconn.PgError, its Code is
// returned. Otherwise Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into an Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates an application error code from a DB error.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	blog_entry + UniqueViolation => BLOG_ENTRY_ALREADY_EXISTS
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Very naive singularization: "USERS" -> "USER". Irregular plurals
	// are left alone.
	if strings.HasSuffix(domain, "S") && !strings.HasSuffix(domain, "SS") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	case UndefinedTable, UndefinedColumn:
		action = "SCHEMA_MISSING"
	case ConnectionFailure, TooManyConnections, AdminShutdown:
		action = "UNAVAILABLE"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// HandleError converts a storage-layer error into an *errs.StorageError.
//
//   - nil: nil
//   - already an *errs.HTTPError or *errs.StorageError: returned unchanged
//   - wraps a *pgconn.PgError: StorageError with a code like BLOG_ENTRY_ERROR
//   - anything else (pool timeouts, closed pool, scan failures): StorageError
//     with code STORAGE_ERROR
//
// The original error text is kept: the error mapper exposes it to clients.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var storageErr *errs.StorageError
	if errors.As(err, &storageErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		return &errs.StorageError{
			Code: generateErrorCode(sqlErr.TableName, sqlErr.Code),
			Err:  err,
		}
	}

	return &errs.StorageError{
		Code: errs.CodeStorageError,
		Err:  err,
	}
}
