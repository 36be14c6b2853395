package auth

import (
	"errors"
	"testing"
	"time"

	"littlelemon/internal/models"
)

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret-key-for-tests-only", time.Hour)
	user := &models.User{ID: "u1", Username: "alice"}

	t.Run("round trip", func(t *testing.T) {
		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != "u1" {
			t.Errorf("UserID = %s, want u1", claims.UserID)
		}
		if claims.Username != "alice" {
			t.Errorf("Username = %s, want alice", claims.Username)
		}
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		other := NewJWTManager("a-different-secret-key", time.Hour)
		_, err = other.Validate(token)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expired := NewJWTManager("test-secret-key-for-tests-only", -time.Minute)
		token, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		_, err = manager.Validate(token)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := manager.Validate("not.a.token")
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
