// Package common defines sentinel errors and small helpers shared by the
// wallet's layers. Callers match errors with errors.Is / errors.As.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate record")

	// ErrStoreUnavailable wraps any transient failure of the record store.
	// It must never be reported to a user as bad credentials.
	ErrStoreUnavailable = errors.New("store unavailable")

	// Service-level errors.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)

// InvalidInputError reports the form fields that failed validation.
// It matches ErrInvalidInput under errors.Is.
type InvalidInputError struct {
	Fields []string
}

// NewInvalidInputError returns nil when no fields are given, so callers can
// collect missing fields and return the result directly.
func NewInvalidInputError(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &InvalidInputError{Fields: fields}
}

func (e *InvalidInputError) Error() string {
	return "invalid input: missing " + strings.Join(e.Fields, ", ")
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
