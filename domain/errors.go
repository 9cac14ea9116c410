package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds
var (
	ErrValidation      = errors.New("validation failed")
	ErrAccountConflict = errors.New("account already exists")
)

// Validation causes
var (
	ErrEmailRequired          = errors.New("email is required")
	ErrPasswordRequired       = errors.New("user must have password")
	ErrNameRequired           = errors.New("first and last name are required")
	ErrPrivilegeConfiguration = errors.New("superuser privilege flags must be true")
	ErrDOBInFuture            = errors.New("date of birth can't be in the future")
	ErrInvalidDate            = errors.New("invalid date")
	ErrForeignPhotoKey        = errors.New("photo key belongs to another account")
)

// Account errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrForbidden          = errors.New("forbidden")
)

// Storage errors
var (
	ErrPhotoStoreDisabled = errors.New("photo storage is not configured")
)

// ValidationError reports a rejected field. It matches ErrValidation and
// unwraps to its cause, if any.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError creates a validation error for field
func NewValidationError(field, message string, cause error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: cause}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Unwrap() error { return e.Err }

// ValidationErrors collects several field errors from one write
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Is(target error) bool { return target == ErrValidation }

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, e := range v {
		errs = append(errs, e)
	}
	return errs
}

// Fields groups messages by field name
func (v ValidationErrors) Fields() map[string][]string {
	out := make(map[string][]string, len(v))
	for _, e := range v {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// ConflictError reports a uniqueness violation on Field
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("account with this %s already exists", e.Field)
}

func (e *ConflictError) Is(target error) bool { return target == ErrAccountConflict }
