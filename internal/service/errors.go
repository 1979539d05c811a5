package service

import "fmt"

// ServiceError is a custom error type for unexpected service failures.
// Expected conditions (not found, validation, forbidden) are returned as the
// underlying domain or store errors instead.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

// PartialWriteError reports that a primary record was committed but a
// follow-up write to one of its side collections failed. The record stays
// written; Err says what went wrong with the rest.
type PartialWriteError struct {
	Entity string
	ID     int64
	Step   string
	Err    error
}

// Error implements the error interface for PartialWriteError.
func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("%s %d was saved but %s failed: %v", e.Entity, e.ID, e.Step, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
