package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"littlelemon/internal/auth"
	"littlelemon/internal/storage"
)

func TestCartService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCartService(env.store)
	ctx := context.Background()

	item := env.seedMenuItem(t, "Greek Salad", "9.00")

	t.Run("anonymous access is forbidden", func(t *testing.T) {
		_, err := svc.List(ctx, auth.Actor{})
		if !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("invalid quantity rejected", func(t *testing.T) {
		if _, err := svc.Add(ctx, env.customer, item.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity for 0, got %v", err)
		}
		if _, err := svc.Add(ctx, env.customer, item.ID, -2); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity for -2, got %v", err)
		}
	})

	t.Run("unknown menu item rejected", func(t *testing.T) {
		_, err := svc.Add(ctx, env.customer, "no-such-item", 1)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("add snapshots current price", func(t *testing.T) {
		line, err := svc.Add(ctx, env.customer, item.ID, 2)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if !line.UnitPrice.Equal(decimal.RequireFromString("9.00")) {
			t.Errorf("UnitPrice = %s, want 9.00", line.UnitPrice)
		}
		if !line.LineTotal.Equal(decimal.RequireFromString("18.00")) {
			t.Errorf("LineTotal = %s, want 18.00", line.LineTotal)
		}
	})

	t.Run("re-adding replaces the line", func(t *testing.T) {
		if _, err := svc.Add(ctx, env.customer, item.ID, 5); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		lines, err := svc.List(ctx, env.customer)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(lines))
		}
		if lines[0].Quantity != 5 {
			t.Errorf("Quantity = %d, want 5", lines[0].Quantity)
		}
		if !lines[0].LineTotal.Equal(decimal.RequireFromString("45.00")) {
			t.Errorf("LineTotal = %s, want 45.00", lines[0].LineTotal)
		}
	})

	t.Run("carts are scoped per user", func(t *testing.T) {
		lines, err := svc.List(ctx, env.manager)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(lines) != 0 {
			t.Errorf("expected manager's cart to be empty, got %d lines", len(lines))
		}
	})

	t.Run("clear then clear again", func(t *testing.T) {
		if err := svc.Clear(ctx, env.customer); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		err := svc.Clear(ctx, env.customer)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound clearing empty cart, got %v", err)
		}
	})
}
