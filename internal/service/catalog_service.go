package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"littlelemon/internal/auth"
	"littlelemon/internal/models"
	"littlelemon/internal/storage"
)

// CatalogService owns categories and menu items: reads for any
// authenticated actor, writes for managers only.
type CatalogService struct {
	store storage.Store
}

// NewCatalogService creates a new CatalogService with the given storage backend.
func NewCatalogService(store storage.Store) *CatalogService {
	return &CatalogService{store: store}
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context, actor auth.Actor) ([]*models.Category, error) {
	if err := auth.Authorize(actor, auth.OpCatalogRead); err != nil {
		return nil, err
	}
	return s.store.ListCategories(ctx)
}

// CreateCategory creates a category. Manager or superuser only.
func (s *CatalogService) CreateCategory(ctx context.Context, actor auth.Actor, slug, title string) (*models.Category, error) {
	if err := auth.Authorize(actor, auth.OpCategoryWrite); err != nil {
		return nil, err
	}
	if slug == "" || title == "" {
		return nil, ErrMissingField
	}

	category := &models.Category{Slug: slug, Title: title}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	slog.Info("category created", "category_id", category.ID, "slug", slug, "actor", actor.Username)
	return category, nil
}

// DeleteCategory removes a category. Deletion is protected: a category
// referenced by any menu item is rejected with ErrCategoryInUse.
func (s *CatalogService) DeleteCategory(ctx context.Context, actor auth.Actor, id string) error {
	if err := auth.Authorize(actor, auth.OpCategoryWrite); err != nil {
		return err
	}
	err := s.store.DeleteCategory(ctx, id)
	if errors.Is(err, storage.ErrReferenced) {
		return ErrCategoryInUse
	}
	if err != nil {
		return err
	}
	slog.Info("category deleted", "category_id", id, "actor", actor.Username)
	return nil
}

// ListMenuItems returns menu items matching the filter.
func (s *CatalogService) ListMenuItems(ctx context.Context, actor auth.Actor, filter storage.MenuItemFilter) ([]*models.MenuItem, error) {
	if err := auth.Authorize(actor, auth.OpCatalogRead); err != nil {
		return nil, err
	}
	return s.store.ListMenuItems(ctx, filter)
}

// GetMenuItem retrieves a single menu item.
func (s *CatalogService) GetMenuItem(ctx context.Context, actor auth.Actor, id string) (*models.MenuItem, error) {
	if err := auth.Authorize(actor, auth.OpCatalogRead); err != nil {
		return nil, err
	}
	return s.store.GetMenuItem(ctx, id)
}

// MenuItemInput carries the writable fields of a menu item.
type MenuItemInput struct {
	Title      string          `json:"title"`
	Price      decimal.Decimal `json:"price"`
	Featured   bool            `json:"featured"`
	CategoryID string          `json:"category_id"`
}

// CreateMenuItem creates a menu item. Manager or superuser only.
func (s *CatalogService) CreateMenuItem(ctx context.Context, actor auth.Actor, input MenuItemInput) (*models.MenuItem, error) {
	if err := auth.Authorize(actor, auth.OpMenuItemWrite); err != nil {
		return nil, err
	}
	if input.Title == "" || input.CategoryID == "" {
		return nil, ErrMissingField
	}
	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if err := s.checkTitleFree(ctx, input.Title, ""); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCategory(ctx, input.CategoryID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	item := &models.MenuItem{
		Title:      input.Title,
		Price:      input.Price.Round(2),
		Featured:   input.Featured,
		CategoryID: input.CategoryID,
	}
	if err := s.store.CreateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	slog.Info("menu item created", "item_id", item.ID, "title", item.Title, "actor", actor.Username)
	return s.store.GetMenuItem(ctx, item.ID)
}

// MenuItemUpdate carries a partial update; nil fields are left unchanged.
type MenuItemUpdate struct {
	Title      *string          `json:"title"`
	Price      *decimal.Decimal `json:"price"`
	Featured   *bool            `json:"featured"`
	CategoryID *string          `json:"category_id"`
}

// UpdateMenuItem applies a partial update. Manager or superuser only.
func (s *CatalogService) UpdateMenuItem(ctx context.Context, actor auth.Actor, id string, update MenuItemUpdate) (*models.MenuItem, error) {
	if err := auth.Authorize(actor, auth.OpMenuItemWrite); err != nil {
		return nil, err
	}

	item, err := s.store.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		if *update.Title == "" {
			return nil, ErrMissingField
		}
		if err := s.checkTitleFree(ctx, *update.Title, id); err != nil {
			return nil, err
		}
		item.Title = *update.Title
	}
	if update.Price != nil {
		if update.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		item.Price = update.Price.Round(2)
	}
	if update.Featured != nil {
		item.Featured = *update.Featured
	}
	if update.CategoryID != nil {
		if _, err := s.store.GetCategory(ctx, *update.CategoryID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrUnknownCategory
			}
			return nil, err
		}
		item.CategoryID = *update.CategoryID
	}

	if err := s.store.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	slog.Info("menu item updated", "item_id", id, "actor", actor.Username)
	return s.store.GetMenuItem(ctx, id)
}

// DeleteMenuItem removes a menu item. Manager or superuser only.
func (s *CatalogService) DeleteMenuItem(ctx context.Context, actor auth.Actor, id string) error {
	if err := auth.Authorize(actor, auth.OpMenuItemWrite); err != nil {
		return err
	}
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	slog.Info("menu item deleted", "item_id", id, "actor", actor.Username)
	return nil
}

// checkTitleFree enforces menu item title uniqueness. selfID exempts the
// item being updated from the check.
func (s *CatalogService) checkTitleFree(ctx context.Context, title, selfID string) error {
	existing, err := s.store.GetMenuItemByTitle(ctx, title)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return ErrDuplicateTitle
	}
	return nil
}
