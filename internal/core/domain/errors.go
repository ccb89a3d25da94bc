package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced to a caller unwraps to exactly one of
// these; anything that does not is treated as an internal failure.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Error is a failure with a human-readable message that unwraps to its kind.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Validationf returns a validation error with a formatted message.
func Validationf(format string, args ...any) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf returns a not-found error with a formatted message.
func NotFoundf(format string, args ...any) error {
	return newError(ErrNotFound, fmt.Sprintf(format, args...))
}

var (
	ErrUserNotFound        = newError(ErrNotFound, "user not found")
	ErrUserExists          = newError(ErrConflict, "user already exists")
	ErrInvalidCredentials  = newError(ErrValidation, "invalid email or password")
	ErrInvalidRole         = newError(ErrValidation, "invalid role")
	ErrSelfRoleChange      = newError(ErrForbidden, "cannot change your own role")
	ErrInvalidID           = newError(ErrValidation, "invalid id")
	ErrMissingToken        = newError(ErrUnauthorized, "access denied: no token provided")
	ErrInvalidToken        = newError(ErrUnauthorized, "invalid token")
	ErrTokenExpired        = newError(ErrUnauthorized, "token expired")
	ErrTokenRevoked        = newError(ErrUnauthorized, "token revoked")
	ErrInsufficientRole    = newError(ErrForbidden, "access denied: insufficient role")
	ErrAppointmentNotFound = newError(ErrNotFound, "appointment not found")
	ErrInvalidTransition   = newError(ErrConflict, "invalid status transition")
	ErrPaymentNotFound     = newError(ErrNotFound, "payment not found")
	ErrNoPaymentsInPeriod  = newError(ErrNotFound, "no payments found for the specified month")
)

// Kind returns the kind sentinel err unwraps to, or nil for internal failures.
func Kind(err error) error {
	for _, k := range []error{ErrValidation, ErrNotFound, ErrUnauthorized, ErrForbidden, ErrConflict} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
