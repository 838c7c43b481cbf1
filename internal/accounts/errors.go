package accounts

import "errors"

var (
	ErrNotFound           = errors.New("accounts: not found")
	ErrEmailTaken         = errors.New("accounts: email already registered")
	ErrInvalidCredentials = errors.New("accounts: invalid email or password")
	ErrInvalidInput       = errors.New("accounts: invalid input")
)
