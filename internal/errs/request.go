package errs

import (
	"errors"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

const (
	// CodeInvalidRequestBody marks a body that could not be decoded at all.
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"

	// CodeValidationFailed marks a body that decoded but broke field rules.
	CodeValidationFailed = "VALIDATION_FAILED"

	// CodeStorageError is used for storage failures without a SQLSTATE.
	CodeStorageError = "STORAGE_ERROR"
)

// DecodeError reports that a request payload could not be parsed into
// the expected type (malformed JSON, wrong types, missing fields).
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError reports that a parsed payload broke one or more field
// constraints. Fields holds every violation, not just the first one found.
type ValidationError struct {
	Fields []FieldError
}

// Error joins every field violation into a single line.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Error)
	}
	return SingleLine("Validation failed: " + strings.Join(parts, "; "))
}

// StorageError reports a failure of the storage collaborator.
//
// Code is an optional machine-friendly code derived from the driver
// (see package sqlerr); Err keeps the original error, wrapping context
// included, for logs.
type StorageError struct {
	Code string
	Err  error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Cause returns the driver's own error, without the context added while
// it travelled up the repository and service layers.
func (e *StorageError) Cause() error {
	return pkgerrors.Cause(e.Err)
}

// ToHTTPError maps any error into the client-facing HTTPError shape.
//
//   - *HTTPError: returned unchanged
//   - *DecodeError: 400, message is the parser diagnostic
//   - *ValidationError: 400, message lists every field violation
//   - *StorageError: 500, message is the driver's error text
//   - anything else: generic 500
func ToHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		code := CodeInvalidRequestBody
		return NewBadRequestError(decodeErr.Error(), true, &code, nil)
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		code := CodeValidationFailed
		return NewBadRequestError(validationErr.Error(), true, &code, validationErr.Fields)
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return NewStorageFailureError(storageErr.Code, storageErr.Cause().Error())
	}

	return NewInternalServerError()
}
