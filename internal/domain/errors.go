package domain

import "fmt"

// ValidationError reports a field value outside its allowed bounds.
// It is raised locally by entity constructors and mutators and never
// touches storage.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func newValidationError(field, format string, args ...any) error {
	return NewValidationError(field, format, args...)
}
