package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("email", "Email is required", ErrEmailRequired)

	if err.Error() != "email: Email is required" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("validation error should match ErrValidation")
	}
	if !errors.Is(err, ErrEmailRequired) {
		t.Error("validation error should unwrap to its cause")
	}
	if errors.Is(err, ErrAccountConflict) {
		t.Error("validation error should not match ErrAccountConflict")
	}

	wrapped := fmt.Errorf("create account: %w", err)
	var ve *ValidationError
	if !errors.As(wrapped, &ve) {
		t.Fatal("expected errors.As to find the validation error")
	}
	if ve.Field != "email" {
		t.Errorf("expected field email, got %s", ve.Field)
	}
}

func TestValidationError_NoField(t *testing.T) {
	err := NewValidationError("", "Superuser must have is_staff=True.", ErrPrivilegeConfiguration)
	if err.Error() != "Superuser must have is_staff=True." {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrPrivilegeConfiguration) {
		t.Error("expected privilege configuration cause")
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		NewValidationError("dob", "Date of birth can't be in the future", ErrDOBInFuture),
		NewValidationError("email", "Enter a valid email address.", nil),
		NewValidationError("dob", "second message", nil),
	}

	if !errors.Is(errs, ErrValidation) {
		t.Error("collection should match ErrValidation")
	}
	if !errors.Is(errs, ErrDOBInFuture) {
		t.Error("collection should expose member causes")
	}

	fields := errs.Fields()
	if len(fields["dob"]) != 2 {
		t.Errorf("expected two dob messages, got %v", fields["dob"])
	}
	if fields["email"][0] != "Enter a valid email address." {
		t.Errorf("unexpected email message %v", fields["email"])
	}

	expected := "dob: Date of birth can't be in the future; email: Enter a valid email address.; dob: second message"
	if errs.Error() != expected {
		t.Errorf("expected %q, got %q", expected, errs.Error())
	}
}

func TestConflictError(t *testing.T) {
	err := &ConflictError{Field: "phone_number"}

	if err.Error() != "account with this phone_number already exists" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrAccountConflict) {
		t.Error("conflict error should match ErrAccountConflict")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("conflict error should not match ErrValidation")
	}

	wrapped := fmt.Errorf("failed to create account: %w", err)
	if !errors.Is(wrapped, ErrAccountConflict) {
		t.Error("wrapped conflict should still match")
	}
}

func TestAccountErrors_Distinct(t *testing.T) {
	all := []error{
		ErrValidation, ErrAccountConflict, ErrEmailRequired, ErrPasswordRequired,
		ErrPrivilegeConfiguration, ErrDOBInFuture, ErrInvalidDate, ErrAccountNotFound,
		ErrInvalidCredentials, ErrAccountInactive, ErrForbidden, ErrPhotoStoreDisabled,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
