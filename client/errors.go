// ABOUTME: Error taxonomy for backend operations
// ABOUTME: ValidationError before any request, TransportError for network or non-2xx failures
package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrDeclined is returned when a destructive operation was not confirmed.
// No request is issued.
var ErrDeclined = errors.New("operation not confirmed")

// ValidationError reports missing or invalid input. It is raised before any
// network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// TransportError reports a failed request or a non-2xx response.
type TransportError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to %s: %s %s returned HTTP %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

var validate = validator.New()

// validateInput runs struct tag validation and converts the first failure
// into a ValidationError.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Message: "is required"}
	case "oneof":
		return &ValidationError{Field: field, Message: "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")}
	default:
		return &ValidationError{Field: field, Message: fmt.Sprintf("failed validation (%s)", fe.Tag())}
	}
}
