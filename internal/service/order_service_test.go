package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"littlelemon/internal/auth"
	"littlelemon/internal/storage"
)

func TestOrderLifecycle(t *testing.T) {
	env := newTestEnv(t)
	carts := NewCartService(env.store)
	orders := NewOrderService(env.store)
	ctx := context.Background()

	salad := env.seedMenuItem(t, "Greek Salad", "9.00")
	bruschetta := env.seedMenuItem(t, "Bruschetta", "15.00")

	if _, err := carts.Add(ctx, env.customer, salad.ID, 2); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := carts.Add(ctx, env.customer, bruschetta.ID, 1); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	order, err := orders.Create(ctx, env.customer)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("checkout totals and empties the cart", func(t *testing.T) {
		if !order.Total.Equal(decimal.RequireFromString("33.00")) {
			t.Errorf("Total = %s, want 33.00", order.Total)
		}
		if len(order.Lines) != 2 {
			t.Errorf("expected 2 lines, got %d", len(order.Lines))
		}
		lines, err := carts.List(ctx, env.customer)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(lines) != 0 {
			t.Errorf("expected empty cart after checkout, got %d lines", len(lines))
		}
	})

	t.Run("listing is scoped by role", func(t *testing.T) {
		got, err := orders.List(ctx, env.customer, ListParams{})
		if err != nil {
			t.Fatalf("List as customer failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("customer sees %d orders, want 1", len(got))
		}

		got, err = orders.List(ctx, env.manager, ListParams{})
		if err != nil {
			t.Fatalf("List as manager failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("manager sees %d orders, want 1", len(got))
		}

		got, err = orders.List(ctx, env.crew, ListParams{})
		if err != nil {
			t.Fatalf("List as crew failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("unassigned crew sees %d orders, want 0", len(got))
		}
	})

	t.Run("only the owner retrieves by id", func(t *testing.T) {
		got, err := orders.Get(ctx, env.customer, order.ID)
		if err != nil {
			t.Fatalf("Get as owner failed: %v", err)
		}
		if got.ID != order.ID {
			t.Errorf("got order %s, want %s", got.ID, order.ID)
		}

		if _, err := orders.Get(ctx, env.manager, order.ID); !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden for manager, got %v", err)
		}
		if _, err := orders.Get(ctx, env.crew, order.ID); !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden for crew, got %v", err)
		}
	})

	t.Run("crew assignment is a bulk update by owner", func(t *testing.T) {
		if err := orders.AssignCrew(ctx, env.customer, env.customer.ID, env.crew.ID); !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden for customer, got %v", err)
		}

		if err := orders.AssignCrew(ctx, env.manager, env.customer.ID, env.crew.ID); err != nil {
			t.Fatalf("AssignCrew failed: %v", err)
		}

		got, err := orders.List(ctx, env.crew, ListParams{})
		if err != nil {
			t.Fatalf("List as crew failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("assigned crew sees %d orders, want 1", len(got))
		}

		err = orders.AssignCrew(ctx, env.manager, "user-without-orders", env.crew.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for empty target set, got %v", err)
		}

		err = orders.AssignCrew(ctx, env.manager, env.customer.ID, "no-such-crew")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown crew, got %v", err)
		}
	})

	t.Run("status updates are crew only", func(t *testing.T) {
		if err := orders.UpdateStatus(ctx, env.manager, env.customer.ID, true); !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden for manager, got %v", err)
		}
		if err := orders.UpdateStatus(ctx, env.customer, env.customer.ID, true); !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden for customer, got %v", err)
		}

		if err := orders.UpdateStatus(ctx, env.crew, env.customer.ID, true); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		got, err := orders.Get(ctx, env.customer, order.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !got.Status {
			t.Error("expected order to be delivered")
		}

		err = orders.UpdateStatus(ctx, env.crew, "user-without-orders", true)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for empty target set, got %v", err)
		}
	})

	t.Run("manager full update", func(t *testing.T) {
		got, err := orders.Update(ctx, env.manager, order.ID, env.crew.ID, false)
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got.Status {
			t.Error("expected status reset to undelivered")
		}
		if got.DeliveryCrewID != env.crew.ID {
			t.Errorf("DeliveryCrewID = %s, want %s", got.DeliveryCrewID, env.crew.ID)
		}
		if !got.Total.Equal(order.Total) {
			t.Errorf("total changed on update: %s", got.Total)
		}

		_, err = orders.Update(ctx, env.manager, order.ID, "no-such-crew", true)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown crew, got %v", err)
		}
	})

	t.Run("empty cart checkout yields zero order", func(t *testing.T) {
		zero, err := orders.Create(ctx, env.customer)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if !zero.Total.IsZero() || len(zero.Lines) != 0 {
			t.Errorf("expected empty order, got total %s with %d lines", zero.Total, len(zero.Lines))
		}
	})

	t.Run("only managers delete", func(t *testing.T) {
		if err := orders.Delete(ctx, env.customer, order.ID); !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden for customer, got %v", err)
		}
		if err := orders.Delete(ctx, env.superuser, order.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		err := orders.Delete(ctx, env.manager, order.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on repeat delete, got %v", err)
		}
	})
}
