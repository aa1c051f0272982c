package app

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrSessionInvalid    = errors.New("session invalid or expired")
	ErrForbidden         = errors.New("access denied")
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateRequest  = errors.New("request already exists")
)
