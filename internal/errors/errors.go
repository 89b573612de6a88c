// Package errors provides the sentinel errors shared by all domain packages.
// Domain packages wrap these with context so callers can branch on the
// category (errors.Is) while still seeing what actually happened.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input data is malformed or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the caller is not authorized for the
	// requested scope (e.g. the trust anchor rejected the group).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates a transport failure talking to an external
	// collaborator. It is propagated unchanged; no retry is attempted here.
	ErrUnavailable = errors.New("unavailable")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context while preserving the error chain.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
