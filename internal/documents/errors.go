package documents

import "errors"

var (
	// ErrNotFound covers both missing documents and documents owned by a
	// different user; callers must not be able to tell these apart.
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
)
