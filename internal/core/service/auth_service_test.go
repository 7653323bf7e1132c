package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/infrastructure/db/memory"
)

const testSecret = "test-secret"

func newAuthService() *AuthService {
	return NewAuthService(memory.NewUserRepository(), testSecret, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	svc := newAuthService()

	token, user, err := svc.Register(context.Background(), "alice", "s3cretpass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if token == "" {
		t.Error("register must return a token")
	}
	if user.ID == "" || user.Username != "alice" {
		t.Errorf("unexpected user: %+v", user)
	}
	if user.PasswordHash == "s3cretpass" {
		t.Error("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")) != nil {
		t.Error("stored hash must verify against the original password")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthService()

	if _, _, err := svc.Register(context.Background(), "alice", "s3cretpass"); err != nil {
		t.Fatal(err)
	}
	_, _, err := svc.Register(context.Background(), "alice", "otherpass1")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("got %v, want ErrUserExists", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc := newAuthService()

	if _, _, err := svc.Register(context.Background(), "alice", "s3cretpass"); err != nil {
		t.Fatal(err)
	}

	token, user, err := svc.Login(context.Background(), "alice", "s3cretpass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username: got %q", user.Username)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID {
		t.Errorf("sub claim: got %v, want %s", claims["sub"], user.ID)
	}
	if claims["username"] != "alice" {
		t.Errorf("username claim: got %v", claims["username"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newAuthService()

	if _, _, err := svc.Register(context.Background(), "alice", "s3cretpass"); err != nil {
		t.Fatal(err)
	}
	_, _, err := svc.Login(context.Background(), "alice", "wrongpass1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newAuthService()

	// Must be indistinguishable from a wrong password.
	_, _, err := svc.Login(context.Background(), "nobody", "whatever1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthService_EmptyInput(t *testing.T) {
	svc := newAuthService()

	if _, _, err := svc.Register(context.Background(), "", "s3cretpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty username register: got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "alice", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password login: got %v", err)
	}
}
