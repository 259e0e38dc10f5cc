package notes

import "errors"

var (
	// ErrNotFound is returned when a note does not exist or belongs to
	// another user.
	ErrNotFound = errors.New("note not found")
	// ErrInvalidInput marks a rejected request payload.
	ErrInvalidInput = errors.New("invalid input")
)
