// Package validation turns raw request bodies into validated values.
//
// It runs in two explicit stages: decode the JSON body, then validate
// the decoded value. The stages fail with different error types
// (errs.DecodeError, errs.ValidationError) so callers can tell "could not
// parse" from "parsed but invalid".
package validation
