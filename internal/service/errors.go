package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/saga"
	"github.com/phrazzld/shop-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Validation, not-found and conflict errors are returned unwrapped
// 2. Unexpected errors are wrapped in a ServiceError
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrPartialWrite indicates a cross-store operation committed some of its
	// writes and then failed. It maps to HTTP 500; the committed writes stay.
	ErrPartialWrite = errors.New("cross-store write incomplete")
)

// ServiceError wraps unexpected errors with the operation that failed.
type ServiceError struct {
	// Service is the service that failed (e.g., "order", "task")
	Service string
	// Operation is the operation that failed (e.g., "create_order")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// It returns known sentinel-backed errors directly without wrapping.
func NewServiceError(service, operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if isExpected(err) {
		return err
	}
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func isExpected(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, store.ErrInvalidEntity) ||
		store.IsNotFoundError(err) ||
		store.IsDuplicateError(err)
}

// sagaError converts a failed saga run. A failure before anything committed
// is treated like any single-store failure. A failure after a commit is a
// partial write: it is reported as ErrPartialWrite and the underlying cause
// is kept only as text, so a not-found from the counter step cannot turn
// into a 404 for an order that was in fact written.
func sagaError(service, operation string, err error) error {
	se, ok := saga.IsStepError(err)
	if !ok || len(se.Committed) == 0 {
		cause := err
		if ok {
			cause = se.Err
		}
		return NewServiceError(service, operation, "store write failed", cause)
	}
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   fmt.Sprintf("step %s failed", se.Step),
		Err:       fmt.Errorf("%w: %v", ErrPartialWrite, se),
	}
}
