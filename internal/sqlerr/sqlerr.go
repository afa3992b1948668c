// Package sqlerr handles database driver errors.
//
// It parses PostgreSQL SQLSTATE codes from pgx errors and turns them
// into storage errors with a stable, machine-friendly code
// (e.g. a unique violation on blog_entry becomes BLOG_ENTRY_ALREADY_EXISTS).
package sqlerr

import "fmt"

// Code is a coarse classification of a PostgreSQL error.
type Code string

const (
	Other                  Code = "other"
	NotNullViolation       Code = "not_null_violation"
	ForeignKeyViolation    Code = "foreign_key_violation"
	UniqueViolation        Code = "unique_violation"
	CheckViolation         Code = "check_violation"
	ExclusionViolation     Code = "exclusion_violation"
	InvalidTextRepr        Code = "invalid_text_representation"
	UndefinedTable         Code = "undefined_table"
	UndefinedColumn        Code = "undefined_column"
	ConnectionFailure      Code = "connection_failure"
	InsufficientPrivilege  Code = "insufficient_privilege"
	QueryCanceled          Code = "query_canceled"
	SerializationFailure   Code = "serialization_failure"
	DeadlockDetected       Code = "deadlock_detected"
	StringDataRightTrunc   Code = "string_data_right_truncation"
	InvalidDatetimeFormat  Code = "invalid_datetime_format"
	DatetimeFieldOverflow  Code = "datetime_field_overflow"
	TooManyConnections     Code = "too_many_connections"
	AdminShutdown          Code = "admin_shutdown"
	DuplicateTable         Code = "duplicate_table"
	DuplicateObject        Code = "duplicate_object"
	SyntaxError            Code = "syntax_error"
	InvalidCatalogName     Code = "invalid_catalog_name"
	InvalidPassword        Code = "invalid_password"
	InvalidAuthorization   Code = "invalid_authorization_specification"
	ReadOnlySQLTransaction Code = "read_only_sql_transaction"
)

// sqlStates maps SQLSTATE values to Codes. Class-level fallbacks are
// handled in MapCode.
var sqlStates = map[string]Code{
	"23502": NotNullViolation,
	"23503": ForeignKeyViolation,
	"23505": UniqueViolation,
	"23514": CheckViolation,
	"23P01": ExclusionViolation,
	"22P02": InvalidTextRepr,
	"22001": StringDataRightTrunc,
	"22007": InvalidDatetimeFormat,
	"22008": DatetimeFieldOverflow,
	"42P01": UndefinedTable,
	"42703": UndefinedColumn,
	"42P07": DuplicateTable,
	"42710": DuplicateObject,
	"42601": SyntaxError,
	"42501": InsufficientPrivilege,
	"57014": QueryCanceled,
	"57P01": AdminShutdown,
	"40001": SerializationFailure,
	"40P01": DeadlockDetected,
	"53300": TooManyConnections,
	"3D000": InvalidCatalogName,
	"28P01": InvalidPassword,
	"28000": InvalidAuthorization,
	"25006": ReadOnlySQLTransaction,
}

// MapCode maps a SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	if code, ok := sqlStates[sqlState]; ok {
		return code
	}
	// Class 08: connection exception.
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return ConnectionFailure
	}
	return Other
}

// Severity mirrors the PostgreSQL error severity levels.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// MapSeverity maps the server-reported severity string to a Severity.
// Unknown values are treated as SeverityError.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}

// Error is a normalized PostgreSQL error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
