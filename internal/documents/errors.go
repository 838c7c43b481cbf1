package documents

import "errors"

var (
	// ErrNotFound covers both unknown ids and ids owned by another user, so
	// existence is never leaked across accounts.
	ErrNotFound     = errors.New("document not found")
	ErrInvalidInput = errors.New("invalid input")
)
