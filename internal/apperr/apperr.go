package apperr

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable marks an optional subsystem that could not answer.
	// Callers fall back to the deterministic path.
	ErrUnavailable = errors.New("unavailable")
)
