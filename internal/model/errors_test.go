package model

import (
	"errors"
	"testing"
)

func TestNewMissingFieldError_MessageNamesField(t *testing.T) {
	err := NewMissingFieldError("birthdate")

	if err.Code != ErrCodeBadRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeBadRequest)
	}
	if err.Message != "'birthdate' is required" {
		t.Errorf("Message = %q, want %q", err.Message, "'birthdate' is required")
	}
}

func TestNewNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError()

	if err.Code != ErrCodeNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeNotFound)
	}
	if err.Message != "data not found" {
		t.Errorf("Message = %q, want %q", err.Message, "data not found")
	}
}

func TestNewInvalidCredentialsError_Message(t *testing.T) {
	err := NewInvalidCredentialsError()

	if err.Code != ErrCodeUnauthenticated {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeUnauthenticated)
	}
	if err.Message != "Invalid credentials" {
		t.Errorf("Message = %q, want %q", err.Message, "Invalid credentials")
	}
}

func TestNewCommitFailedError_IncludesStoreMessage(t *testing.T) {
	err := NewCommitFailedError(errors.New("duplicate key value"))

	if err.Code != ErrCodeCommitFailed {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeCommitFailed)
	}
	if want := "commit failed: duplicate key value"; err.Message != want {
		t.Errorf("Message = %q, want %q", err.Message, want)
	}
}

// APIErrorはerrors.Asで取り出せること
func TestAPIError_ErrorsAs(t *testing.T) {
	var err error = NewForbiddenError()

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("errors.As should match *APIError")
	}
	if apiErr.Code != ErrCodeForbidden {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrCodeForbidden)
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleTeacher, RoleStudent} {
		if !ValidRole(r) {
			t.Errorf("ValidRole(%q) = false, want true", r)
		}
	}
	if ValidRole("principal") {
		t.Error("ValidRole(\"principal\") = true, want false")
	}
}
