package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrInactive is returned when a mutation targets an inactive product
	ErrInactive = errors.New("product is not active")

	// ErrConflict is returned when a write collides with a unique name or ean13
	ErrConflict = errors.New("conflict occurred")
)

// ValidationError describes malformed, forbidden, missing or blank input.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError builds a ValidationError from a format string
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// StateError is returned when the product lifecycle forbids the operation.
// It matches ErrInactive with errors.Is.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string { return e.Msg }

func (e *StateError) Is(target error) bool { return target == ErrInactive }

// NewStateError builds a StateError
func NewStateError(msg string) error {
	return &StateError{Msg: msg}
}

// NotFoundError is returned for a well-formed hash with no matching product.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFoundError builds a NotFoundError
func NewNotFoundError(msg string) error {
	return &NotFoundError{Msg: msg}
}
