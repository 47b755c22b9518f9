package services

import (
	"errors"
	"testing"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	auth := NewAuthService(newTestStore(t))

	user, err := auth.Register("mikey", "hunter2", "driver")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != "driver" {
		t.Fatalf("role = %q, want driver", user.Role)
	}
	if user.Password == "hunter2" {
		t.Fatal("password stored in plaintext")
	}

	got, err := auth.Authenticate("mikey", "hunter2")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("authenticated user ID = %d, want %d", got.ID, user.ID)
	}

	if _, err := auth.Authenticate("mikey", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("bad password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := auth.Authenticate("nobody", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user error = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	auth := NewAuthService(newTestStore(t))

	if _, err := auth.Register("mikey", "hunter2", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := auth.Register("mikey", "other", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate username error = %v, want ErrValidation", err)
	}
}

func TestRegisterRoleHandling(t *testing.T) {
	auth := NewAuthService(newTestStore(t))

	user, err := auth.Register("plain", "pw", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != "user" {
		t.Fatalf("default role = %q, want user", user.Role)
	}

	if _, err := auth.Register("odd", "pw", "superadmin"); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad role error = %v, want ErrValidation", err)
	}
	if _, err := auth.Register("", "pw", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty username error = %v, want ErrValidation", err)
	}
	if _, err := auth.Register("nopw", "", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty password error = %v, want ErrValidation", err)
	}
}
