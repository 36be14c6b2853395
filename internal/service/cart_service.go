package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"littlelemon/internal/auth"
	"littlelemon/internal/models"
	"littlelemon/internal/storage"
)

// CartService maintains each user's pending selections. Carts are strictly
// scoped to their owner: no actor, managers included, may touch another
// user's cart. Only checkout (OrderService) consumes them.
type CartService struct {
	store storage.Store
}

// NewCartService creates a new CartService with the given storage backend.
func NewCartService(store storage.Store) *CartService {
	return &CartService{store: store}
}

// List returns all cart lines owned by the actor.
func (s *CartService) List(ctx context.Context, actor auth.Actor) ([]*models.CartLine, error) {
	if err := auth.Authorize(actor, auth.OpCartAccess); err != nil {
		return nil, err
	}
	return s.store.ListCartLines(ctx, actor.ID)
}

// Add puts a menu item in the actor's cart, snapshotting the current menu
// price. Adding an item already in the cart replaces the existing line
// with the new quantity rather than duplicating it.
func (s *CartService) Add(ctx context.Context, actor auth.Actor, menuItemID string, quantity int) (*models.CartLine, error) {
	if err := auth.Authorize(actor, auth.OpCartAccess); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.store.GetMenuItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}

	line := &models.CartLine{
		UserID:     actor.ID,
		MenuItemID: item.ID,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		LineTotal:  item.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
	}
	if err := s.store.UpsertCartLine(ctx, line); err != nil {
		return nil, err
	}
	slog.Info("cart line upserted",
		"user_id", actor.ID,
		"menu_item_id", item.ID,
		"quantity", quantity,
	)
	return line, nil
}

// Clear deletes all of the actor's cart lines. Clearing an already-empty
// cart returns storage.ErrNotFound rather than silently succeeding.
func (s *CartService) Clear(ctx context.Context, actor auth.Actor) error {
	if err := auth.Authorize(actor, auth.OpCartAccess); err != nil {
		return err
	}
	n, err := s.store.ClearCart(ctx, actor.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	slog.Info("cart cleared", "user_id", actor.ID, "lines", n)
	return nil
}
