package blog

import "errors"

var (
	ErrNotFound     = errors.New("blog: not found")
	ErrForbidden    = errors.New("blog: forbidden")
	ErrInvalidInput = errors.New("blog: invalid input")
)
