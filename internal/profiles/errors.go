package profiles

import "errors"

var (
	ErrNotFound     = errors.New("profiles: not found")
	ErrInvalidInput = errors.New("profiles: invalid input")
)
