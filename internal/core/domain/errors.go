package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountLocked      = errors.New("account is locked")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserExists         = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("resource not found")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError reports a rejected input field. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
