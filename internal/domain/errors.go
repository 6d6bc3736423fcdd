package domain

import "errors"

var (
	// ErrValidation marks malformed input caught at the request boundary.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a lookup for a record that does not exist.
	ErrNotFound = errors.New("not found")
)
