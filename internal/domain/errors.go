package domain

import (
	"errors"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// initiative or team does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule (unknown
// granularity, bad period label, team name that normalizes to nothing).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a create would overwrite an existing record,
// e.g. two team names that normalize to the same id.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries one or more field errors.
// errors.Is(err, ErrValidation) reports true for it.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

// Is lets errors.Is match ValidationError against the ErrValidation sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
