package validation

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"reflect"
	"strings"

	"github.com/deppfellow/blog-service/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"min=10"`)
//   - Implement Validate() error that runs a validator from NewValidator
type Validatable interface {
	Validate() error
}

// NewValidator returns a validator that reports fields by their JSON
// names, so messages match what the client sent.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Decode parses raw JSON into a new T. Any parse problem (malformed JSON,
// wrong types, missing required keys) is returned as *errs.DecodeError.
func Decode[T any](raw []byte) (*T, error) {
	payload := new(T)
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, &errs.DecodeError{Err: err}
	}
	return payload, nil
}

// Validate runs payload.Validate and turns a failure into
// *errs.ValidationError listing every violated field.
func Validate(payload Validatable) error {
	if err := payload.Validate(); err != nil {
		return ToValidationError(err)
	}
	return nil
}

// DecodeAndValidate is the two-stage pipeline: Decode, then Validate.
// It returns the payload only if both stages succeed.
func DecodeAndValidate[T any, PT interface {
	*T
	Validatable
}](raw []byte) (PT, error) {
	payload, err := Decode[T](raw)
	if err != nil {
		return nil, err
	}

	if err := Validate(PT(payload)); err != nil {
		return nil, err
	}

	return PT(payload), nil
}

// BindAndValidate reads the request body and runs DecodeAndValidate on it.
//
// A Content-Type other than application/json is a decode error; a
// missing Content-Type is accepted.
func BindAndValidate[T any, PT interface {
	*T
	Validatable
}](c echo.Context) (PT, error) {
	if contentType := c.Request().Header.Get(echo.HeaderContentType); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != echo.MIMEApplicationJSON {
			return nil, &errs.DecodeError{
				Err: fmt.Errorf("expected request with `Content-Type: %s`", echo.MIMEApplicationJSON),
			}
		}
	}

	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, &errs.DecodeError{Err: fmt.Errorf("failed to read request body: %w", err)}
	}

	return DecodeAndValidate[T, PT](raw)
}

// ToValidationError converts a validator error into *errs.ValidationError.
// Errors that are not validator.ValidationErrors become a single
// field-less violation so nothing is lost.
func ToValidationError(err error) *errs.ValidationError {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &errs.ValidationError{
			Fields: []errs.FieldError{{Field: "body", Error: errs.SingleLine(err.Error())}},
		}
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fieldErr.Field(),
			Error: fieldMessage(fieldErr),
		})
	}

	return &errs.ValidationError{Fields: fieldErrors}
}

// fieldMessage turns one validator.FieldError into a user-friendly message.
func fieldMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "min":
		// For strings min is a length, for numbers a value.
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "email":
		return "must be a valid email address"

	case "url":
		return "must be a valid URL"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", err.Field(), err.Tag())
	}
}
