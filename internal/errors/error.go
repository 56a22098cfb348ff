package errors

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyAuth          = errors.New("missing authorization")
	ErrEmptySubject       = errors.New("missing subject")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrFailedHashPassword = errors.New("failed hashing password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordMismatch   = errors.New("password mismatch")
	ErrNotFound           = errors.New("record not found")
	ErrPersistence        = errors.New("persistence failure")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrWrongStep          = errors.New("action not allowed in current step")
	ErrIllegalTransition  = errors.New("status transition not allowed")
	ErrUnknownStatus      = errors.New("unknown status")
	ErrInvalidCode        = errors.New("verification code is invalid")
	ErrNotSent            = errors.New("verification code was not sent")
	ErrDelivery           = errors.New("failed delivering verification code")
	ErrRateLimited        = errors.New("too many verification codes requested")
)

// ValidationError reports the offending fields of a submitted form.
type ValidationError struct {
	Fields map[string]string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("validation failed on fields=%v", v.Fields)
}

func NewValidationError(fields map[string]string) error {
	return ValidationError{Fields: fields}
}

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

// ValidationFields returns the offending fields of err, or nil.
func ValidationFields(err error) map[string]string {
	var v ValidationError
	if errors.As(err, &v) {
		return v.Fields
	}
	return nil
}
