package auth

import (
	"context"
	"errors"
	"testing"

	"littlelemon/internal/models"
	"littlelemon/internal/storage"
)

// memoryUsers is a minimal in-memory UserStorage for authenticator tests.
type memoryUsers struct {
	byUsername map[string]*models.User
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byUsername: make(map[string]*models.User)}
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	m.byUsername[user.Username] = user
	return nil
}

func (m *memoryUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func TestPasswordAuthenticator(t *testing.T) {
	authenticator := NewPasswordAuthenticator(newMemoryUsers())
	ctx := context.Background()

	t.Run("register hashes the password", func(t *testing.T) {
		user, err := authenticator.Register(ctx, "alice", "alice@example.com", "correct horse battery")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.ID == "" {
			t.Error("expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}
		if user.PasswordHash == "correct horse battery" {
			t.Error("password stored in plain text")
		}
	})

	t.Run("weak password rejected", func(t *testing.T) {
		_, err := authenticator.Register(ctx, "bob", "", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := authenticator.Register(ctx, "alice", "", "another password")
		if !errors.Is(err, ErrUsernameExists) {
			t.Errorf("expected ErrUsernameExists, got %v", err)
		}
	})

	t.Run("authenticate", func(t *testing.T) {
		user, err := authenticator.Authenticate(ctx, "alice", "correct horse battery")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("Username = %s, want alice", user.Username)
		}

		if _, err := authenticator.Authenticate(ctx, "alice", "wrong password"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
		if _, err := authenticator.Authenticate(ctx, "nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
