package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"littlelemon/internal/auth"
	"littlelemon/internal/storage"
)

func TestCatalogAuthorization(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.store)
	ctx := context.Background()

	t.Run("customer menu item write is unauthorized", func(t *testing.T) {
		_, err := svc.CreateMenuItem(ctx, env.customer, MenuItemInput{
			Title: "Pizza", Price: decimal.RequireFromString("10.00"), CategoryID: "x",
		})
		if !errors.Is(err, auth.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("crew menu item write is unauthorized", func(t *testing.T) {
		err := svc.DeleteMenuItem(ctx, env.crew, "x")
		if !errors.Is(err, auth.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("customer category write is forbidden", func(t *testing.T) {
		_, err := svc.CreateCategory(ctx, env.customer, "mains", "Mains")
		if !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("anonymous catalog read is forbidden", func(t *testing.T) {
		_, err := svc.ListMenuItems(ctx, auth.Actor{}, storage.MenuItemFilter{})
		if !errors.Is(err, auth.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("customer can read the catalog", func(t *testing.T) {
		if _, err := svc.ListCategories(ctx, env.customer); err != nil {
			t.Errorf("ListCategories failed: %v", err)
		}
		if _, err := svc.ListMenuItems(ctx, env.customer, storage.MenuItemFilter{}); err != nil {
			t.Errorf("ListMenuItems failed: %v", err)
		}
	})
}

func TestCatalogLifecycle(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCatalogService(env.store)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, env.manager, "appetizers", "Appetizers")
	if err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	t.Run("create computes price after tax", func(t *testing.T) {
		item, err := svc.CreateMenuItem(ctx, env.manager, MenuItemInput{
			Title:      "Bruschetta",
			Price:      decimal.RequireFromString("8.00"),
			CategoryID: category.ID,
		})
		if err != nil {
			t.Fatalf("CreateMenuItem failed: %v", err)
		}
		if !item.PriceAfterTax.Equal(decimal.RequireFromString("8.80")) {
			t.Errorf("PriceAfterTax = %s, want 8.80", item.PriceAfterTax)
		}
		if item.Category == nil || item.Category.ID != category.ID {
			t.Error("expected category resolved on created item")
		}
	})

	t.Run("duplicate title rejected", func(t *testing.T) {
		_, err := svc.CreateMenuItem(ctx, env.manager, MenuItemInput{
			Title:      "Bruschetta",
			Price:      decimal.RequireFromString("9.00"),
			CategoryID: category.ID,
		})
		if !errors.Is(err, ErrDuplicateTitle) {
			t.Errorf("expected ErrDuplicateTitle, got %v", err)
		}
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := svc.CreateMenuItem(ctx, env.manager, MenuItemInput{
			Title:      "Mystery Dish",
			Price:      decimal.RequireFromString("1.00"),
			CategoryID: "no-such-category",
		})
		if !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("expected ErrUnknownCategory, got %v", err)
		}
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := svc.CreateMenuItem(ctx, env.manager, MenuItemInput{
			Title:      "Free Lunch",
			Price:      decimal.RequireFromString("-1.00"),
			CategoryID: category.ID,
		})
		if !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("expected ErrInvalidPrice, got %v", err)
		}
	})

	t.Run("partial update", func(t *testing.T) {
		item, err := env.store.GetMenuItemByTitle(ctx, "Bruschetta")
		if err != nil {
			t.Fatalf("GetMenuItemByTitle failed: %v", err)
		}

		featured := true
		updated, err := svc.UpdateMenuItem(ctx, env.superuser, item.ID, MenuItemUpdate{
			Featured: &featured,
		})
		if err != nil {
			t.Fatalf("UpdateMenuItem failed: %v", err)
		}
		if !updated.Featured {
			t.Error("expected item to be featured")
		}
		if updated.Title != "Bruschetta" {
			t.Errorf("title changed unexpectedly: %s", updated.Title)
		}

		price := decimal.RequireFromString("10.00")
		updated, err = svc.UpdateMenuItem(ctx, env.manager, item.ID, MenuItemUpdate{
			Price: &price,
		})
		if err != nil {
			t.Fatalf("UpdateMenuItem failed: %v", err)
		}
		if !updated.PriceAfterTax.Equal(decimal.RequireFromString("11.00")) {
			t.Errorf("PriceAfterTax = %s, want 11.00", updated.PriceAfterTax)
		}
		if !updated.Featured {
			t.Error("featured flag lost on price update")
		}
	})

	t.Run("delete category in use", func(t *testing.T) {
		err := svc.DeleteCategory(ctx, env.manager, category.ID)
		if !errors.Is(err, ErrCategoryInUse) {
			t.Errorf("expected ErrCategoryInUse, got %v", err)
		}
	})

	t.Run("delete item then category", func(t *testing.T) {
		item, err := env.store.GetMenuItemByTitle(ctx, "Bruschetta")
		if err != nil {
			t.Fatalf("GetMenuItemByTitle failed: %v", err)
		}
		if err := svc.DeleteMenuItem(ctx, env.manager, item.ID); err != nil {
			t.Fatalf("DeleteMenuItem failed: %v", err)
		}
		if err := svc.DeleteCategory(ctx, env.manager, category.ID); err != nil {
			t.Fatalf("DeleteCategory failed: %v", err)
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		if _, err := svc.CreateCategory(ctx, env.manager, "", "Title"); !errors.Is(err, ErrMissingField) {
			t.Errorf("expected ErrMissingField, got %v", err)
		}
		_, err := svc.CreateMenuItem(ctx, env.manager, MenuItemInput{Title: "No Category"})
		if !errors.Is(err, ErrMissingField) {
			t.Errorf("expected ErrMissingField, got %v", err)
		}
	})
}
