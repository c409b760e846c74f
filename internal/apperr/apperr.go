// Package apperr defines the error kinds the core services surface.
// Every operation boundary recovers these into a failed result envelope;
// none are fatal to the process.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks bad input, such as a reversed date range.
	ErrValidation = errors.New("validation error")
	// ErrConflict marks a car that is unavailable for the requested range.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized marks an actor lacking the role or ownership required.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound marks a referenced id that does not exist.
	ErrNotFound = errors.New("not found")
)

// Validationf wraps ErrValidation with a human-readable message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// Conflictf wraps ErrConflict with a human-readable message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

// Unauthorizedf wraps ErrUnauthorized with a human-readable message.
func Unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrUnauthorized}, args...)...)
}

// NotFoundf wraps ErrNotFound with a human-readable message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}
