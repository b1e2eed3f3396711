package errors

import (
	"errors"
	"fmt"
)

// Sentinels understood by apierr.Classify. Wrap them (directly or via Mark)
// to attach context while keeping the HTTP mapping.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

// Mark wraps sentinel with a formatted message.
func Mark(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel)
}
