package service

import (
	"errors"
	"fmt"

	"github.com/Husniddin989/rustili-lug-at/internal/store"
)

// Common service errors. The API layer maps them to HTTP status codes.
var (
	// ErrWordNotFound indicates that the requested word does not exist.
	// It is the store sentinel, so store.IsNotFoundError matches it too.
	ErrWordNotFound = store.ErrWordNotFound

	// ErrSessionNotFound indicates that a quiz session is unknown or expired.
	ErrSessionNotFound = errors.New("quiz session not found")
)

// ServiceError wraps errors from a service operation with context.
type ServiceError struct {
	// Operation is the operation that failed (e.g. "add_word", "grade_word")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
// Not-found conditions are returned as the bare service sentinel.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrWordNotFound):
		return ErrWordNotFound
	case errors.Is(err, ErrSessionNotFound):
		return ErrSessionNotFound
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
