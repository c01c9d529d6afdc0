package domain

import "errors"

var (
	// ErrNotFound is returned when a client id or zone name does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidUpdate is returned in strict mode when a patch references an
	// unknown zone or carries bin counts outside {1, 2}.
	ErrInvalidUpdate = errors.New("invalid update")
)
