package errors

import (
	"errors"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrTooManyLoginAttempts = errors.New("too many failed login attempts")
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("invalid or expired token")
	ErrNotFound             = errors.New("not found")

	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	ErrInvalidEncryptionKey = errors.New("encryption key must be 64 hex characters")
	ErrMalformedCiphertext  = errors.New("malformed encrypted field")
)
