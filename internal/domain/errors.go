package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the root of every validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID indicates an identifier that cannot be parsed for its store.
	ErrInvalidID = fmt.Errorf("%w: invalid id", ErrValidation)

	// ErrInvalidStatus indicates a task status outside the allowed set.
	ErrInvalidStatus = fmt.Errorf("%w: invalid status", ErrValidation)

	// ErrInvalidPriority indicates a task priority outside the allowed set.
	ErrInvalidPriority = fmt.Errorf("%w: invalid priority", ErrValidation)
)

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError wrapping err. A nil err
// defaults to ErrValidation so errors.Is(…, ErrValidation) always holds.
func NewValidationError(field, message string, err error) *ValidationError {
	if err == nil {
		err = ErrValidation
	}
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
