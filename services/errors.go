package services

import (
	"errors"
	"strings"
)

var (
	// ErrForbidden means the user is authenticated but not allowed to act
	// on the record.
	ErrForbidden = errors.New("forbidden")

	// ErrEmailTaken means the registration email is already in use.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login failures never reveal which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError carries user-visible form validation messages. The
// controller re-renders the originating form with these instead of failing
// the request.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// NewValidationError wraps form validation messages.
func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Messages: messages}
}
