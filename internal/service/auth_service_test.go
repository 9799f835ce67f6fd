package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestAuthService_RegisterAndLogin verifies the register/login roundtrip:
// the stored hash never leaves the service and a token is issued.
func TestAuthService_RegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("Register returned the password hash")
	}

	token, logged, err := svc.Login(ctx, "ada@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Error("Login returned an empty token")
	}
	if logged.ID != user.ID {
		t.Errorf("Login user = %v, want %v", logged.ID, user.ID)
	}
	if logged.PasswordHash != "" {
		t.Error("Login returned the password hash")
	}
}

// TestAuthService_DuplicateEmail verifies registering the same email twice
// fails with ErrUserAlreadyExists.
func TestAuthService_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, err := svc.Register(ctx, "Ada Again", "ada@example.com", "hunter2hunter2"); !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("err = %v, want ErrUserAlreadyExists", err)
	}
}

// TestAuthService_WrongPassword verifies a wrong password fails with the
// generic authentication error, identical to an unknown email.
func TestAuthService_WrongPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret", time.Hour)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ada", "ada@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(ctx, "ada@example.com", "wrong"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("wrong password err = %v, want ErrAuthenticationFailed", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "hunter2hunter2"); !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("unknown email err = %v, want ErrAuthenticationFailed", err)
	}
}

// TestAuthService_RejectsUnsafeName verifies the dollar-sign screen applies
// to the display name.
func TestAuthService_RejectsUnsafeName(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret", time.Hour)

	if _, err := svc.Register(context.Background(), "A$da", "ada@example.com", "hunter2hunter2"); !errors.Is(err, ErrUnsafeInput) {
		t.Errorf("err = %v, want ErrUnsafeInput", err)
	}
}
