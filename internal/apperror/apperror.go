// Package apperror defines the application's error taxonomy.
//
// Sentinel errors classify failures; AppError wraps a sentinel with a
// human-readable message. Handlers use errors.Is to map categories to
// HTTP status codes without inspecting messages.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a lookup, update, or delete whose target row
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks input rejected before it reaches the store.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidReference marks a foreign-key field pointing at a row
	// that does not exist. Detected by the store, not pre-validated.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrConflict marks a delete blocked because dependent rows still
	// reference the target.
	ErrConflict = errors.New("conflict")
)

type AppError struct {
	Err     error  // sentinel classifying the failure
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidReference reports a write whose foreign key points at a missing
// row, e.g. a feeding schedule created with an unknown food type ID.
func InvalidReference(field, message string) *AppError {
	return &AppError{
		Err:     ErrInvalidReference,
		Message: message,
		Field:   field,
	}
}

// DeleteBlocked reports a delete rejected because dependent rows still
// reference the target row.
func DeleteBlocked(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s with id %d is still referenced and cannot be deleted", resource, id),
	}
}
