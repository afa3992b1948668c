// Package model holds the domain types shared by handlers, services and
// repositories.
package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/deppfellow/blog-service/internal/validation"
)

// Entry is one blog post.
//
// Created is set by the caller, not by the server, and any timestamp is
// accepted. Its presence is checked while decoding. Lengths are counted
// in characters (runes), not bytes.
type Entry struct {
	Created time.Time `json:"created" db:"created"`
	Title   string    `json:"title" db:"title" validate:"min=10,max=100"`
	Author  string    `json:"author" db:"author" validate:"email"`
	Text    string    `json:"text" db:"text" validate:"min=10"`
}

var entryValidator = validation.NewValidator()

// Validate checks every field constraint. On failure it returns
// validator.ValidationErrors with one entry per violated field.
func (e *Entry) Validate() error {
	return entryValidator.Struct(e)
}

// MissingFieldError reports a required JSON key that was absent or null.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field `%s`", e.Field)
}

// UnmarshalJSON decodes an entry and rejects payloads that omit any of
// the four fields, so a partial body never reaches validation.
// Unknown keys are ignored.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var wire struct {
		Created *time.Time `json:"created"`
		Title   *string    `json:"title"`
		Author  *string    `json:"author"`
		Text    *string    `json:"text"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	switch {
	case wire.Created == nil:
		return &MissingFieldError{Field: "created"}
	case wire.Title == nil:
		return &MissingFieldError{Field: "title"}
	case wire.Author == nil:
		return &MissingFieldError{Field: "author"}
	case wire.Text == nil:
		return &MissingFieldError{Field: "text"}
	}

	*e = Entry{
		Created: *wire.Created,
		Title:   *wire.Title,
		Author:  *wire.Author,
		Text:    *wire.Text,
	}
	return nil
}

// ListEntriesRequest is the (empty) input of the list operation.
type ListEntriesRequest struct{}

// Validate always succeeds.
func (r *ListEntriesRequest) Validate() error {
	return nil
}
