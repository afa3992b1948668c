// Package errs defines the error types the service hands back to clients.
//
// Every failure leaving the HTTP layer is shaped as an HTTPError, whether
// it started as a malformed body, a rejected entry or a storage problem.
// The request-level error types (DecodeError, ValidationError,
// StorageError) live here too so the mapping from cause to response stays
// in one place.
package errs
