package service

import (
	"context"
	"errors"
	"testing"

	"littlelemon/internal/auth"
	"littlelemon/internal/storage"
)

func TestRosterService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewRosterService(env.store)
	ctx := context.Background()

	t.Run("only managers touch rosters", func(t *testing.T) {
		if _, err := svc.List(ctx, env.customer, auth.RoleManager); !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden for customer, got %v", err)
		}
		if _, err := svc.Add(ctx, env.crew, auth.RoleDeliveryCrew, "alice"); !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden for crew, got %v", err)
		}
	})

	t.Run("grant and list", func(t *testing.T) {
		user, err := svc.Add(ctx, env.manager, auth.RoleDeliveryCrew, "alice")
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if user.Username != "alice" {
			t.Errorf("Username = %s, want alice", user.Username)
		}

		// Re-adding a held role is a no-op.
		if _, err := svc.Add(ctx, env.manager, auth.RoleDeliveryCrew, "alice"); err != nil {
			t.Fatalf("repeat Add failed: %v", err)
		}

		members, err := svc.List(ctx, env.manager, auth.RoleDeliveryCrew)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		// courier from the fixture plus alice.
		if len(members) != 2 {
			t.Errorf("expected 2 crew members, got %d", len(members))
		}
	})

	t.Run("get requires membership", func(t *testing.T) {
		user, err := svc.Get(ctx, env.manager, auth.RoleDeliveryCrew, env.customer.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if user.ID != env.customer.ID {
			t.Errorf("got user %s, want %s", user.ID, env.customer.ID)
		}

		_, err = svc.Get(ctx, env.manager, auth.RoleManager, env.customer.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for non-member, got %v", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Add(ctx, env.manager, auth.RoleManager, "nobody")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("revoke", func(t *testing.T) {
		if err := svc.Remove(ctx, env.manager, auth.RoleDeliveryCrew, env.customer.ID); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		err := svc.Remove(ctx, env.manager, auth.RoleDeliveryCrew, env.customer.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound removing non-member, got %v", err)
		}
	})

	t.Run("superuser qualifies", func(t *testing.T) {
		if _, err := svc.List(ctx, env.superuser, auth.RoleManager); err != nil {
			t.Errorf("List as superuser failed: %v", err)
		}
	})
}
