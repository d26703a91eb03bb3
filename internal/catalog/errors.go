package catalog

import (
	"errors"
	"fmt"
)

// Common catalog errors.
var (
	// ErrNotFound is returned when no paper has the requested ID.
	ErrNotFound = errors.New("Paper not found")
	// ErrValidation is matched by every ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a missing or unacceptable input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, a ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, a...)}
}
