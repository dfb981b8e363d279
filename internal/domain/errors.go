package domain

import "errors"

var (
	// ErrNotFound signals that a directory record (invitation, group, user)
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDirectoryTimeout signals that a directory call exceeded its per-call
	// deadline. Kept distinct from generic failures so the HTTP layer can
	// answer 504 instead of 500.
	ErrDirectoryTimeout = errors.New("directory request timed out")

	// ErrInvalidInput signals a rejected request before any remote call.
	ErrInvalidInput = errors.New("invalid input")
)
