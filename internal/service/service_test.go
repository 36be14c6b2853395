package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"littlelemon/internal/auth"
	"littlelemon/internal/models"
	"littlelemon/internal/storage"
	"littlelemon/internal/storage/sqlite"
)

// testEnv bundles a real SQLite store with one actor per privilege level.
type testEnv struct {
	store     storage.Store
	superuser auth.Actor
	manager   auth.Actor
	crew      auth.Actor
	customer  auth.Actor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "littlelemon-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &testEnv{store: store}
	env.superuser = env.newActor(t, "admin", true)
	env.manager = env.newActor(t, "mario", false, auth.RoleManager)
	env.crew = env.newActor(t, "courier", false, auth.RoleDeliveryCrew)
	env.customer = env.newActor(t, "alice", false)
	return env
}

// newActor registers a user with the given roles and returns its actor.
func (e *testEnv) newActor(t *testing.T, username string, superuser bool, roles ...auth.Role) auth.Actor {
	t.Helper()
	ctx := context.Background()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Superuser:    superuser,
		CreatedAt:    1700000000,
	}
	if err := e.store.CreateUser(ctx, user); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		if err := e.store.AddUserRole(ctx, user.ID, string(r)); err != nil {
			t.Fatalf("failed to add role %s: %v", r, err)
		}
		names = append(names, string(r))
	}
	return auth.NewActor(user.ID, username, superuser, names)
}

// seedMenuItem creates a category on first use and a menu item in it.
func (e *testEnv) seedMenuItem(t *testing.T, title, price string) *models.MenuItem {
	t.Helper()
	ctx := context.Background()

	categories, err := e.store.ListCategories(ctx)
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	var category *models.Category
	if len(categories) > 0 {
		category = categories[0]
	} else {
		category = &models.Category{Slug: "mains", Title: "Mains"}
		if err := e.store.CreateCategory(ctx, category); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
	}

	item := &models.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		CategoryID: category.ID,
	}
	if err := e.store.CreateMenuItem(ctx, item); err != nil {
		t.Fatalf("failed to create menu item %s: %v", title, err)
	}
	return item
}
