package service

import (
	"context"
	"log/slog"

	"littlelemon/internal/auth"
	"littlelemon/internal/models"
	"littlelemon/internal/storage"
)

// OrderService converts carts into immutable orders and owns the order
// lifecycle: pending, crew assignment by a manager, delivered by the
// assigned crew. Nothing forces a crew to be assigned before the status
// flips; the model keeps that coupling loose on purpose.
type OrderService struct {
	store storage.Store
}

// NewOrderService creates a new OrderService with the given storage backend.
func NewOrderService(store storage.Store) *OrderService {
	return &OrderService{store: store}
}

// Create places an order from the actor's cart. The cart snapshot, order
// insert and cart clear happen in one storage transaction. An empty cart
// yields an order with total 0 and no lines.
func (s *OrderService) Create(ctx context.Context, actor auth.Actor) (*models.Order, error) {
	if err := auth.Authorize(actor, auth.OpOrderCreate); err != nil {
		return nil, err
	}
	order, err := s.store.CreateOrderFromCart(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	slog.Info("order placed",
		"order_id", order.ID,
		"user_id", actor.ID,
		"total", order.Total,
		"lines", len(order.Lines),
	)
	return order, nil
}

// ListParams controls ordering and pagination of an order listing.
type ListParams struct {
	OrderBy string // "date" or "total"
	Desc    bool
	Limit   int
	Offset  int
}

// List returns orders scoped by the actor's role: managers and superusers
// see all orders, delivery crew see orders assigned to them, everyone else
// sees their own.
func (s *OrderService) List(ctx context.Context, actor auth.Actor, params ListParams) ([]*models.Order, error) {
	if actor.ID == "" {
		return nil, auth.ErrForbidden
	}

	filter := storage.OrderFilter{
		OrderBy: params.OrderBy,
		Desc:    params.Desc,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}
	switch {
	case actor.IsManager():
		// unscoped
	case actor.IsDeliveryCrew():
		filter.CrewID = actor.ID
	default:
		filter.UserID = actor.ID
	}
	return s.store.ListOrders(ctx, filter)
}

// Get retrieves a single order with its lines. Only the owning user may
// retrieve an order by id; managers and crew go through List.
func (s *OrderService) Get(ctx context.Context, actor auth.Actor, orderID string) (*models.Order, error) {
	if actor.ID == "" {
		return nil, auth.ErrForbidden
	}
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != actor.ID {
		return nil, auth.ErrForbidden
	}
	return order, nil
}

// Update replaces an order's delivery crew and status in one call.
// Manager or superuser only.
func (s *OrderService) Update(ctx context.Context, actor auth.Actor, orderID, crewID string, status bool) (*models.Order, error) {
	if err := auth.Authorize(actor, auth.OpOrderManage); err != nil {
		return nil, err
	}
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if crewID != "" {
		if _, err := s.store.GetUserByID(ctx, crewID); err != nil {
			return nil, err
		}
	}
	order.DeliveryCrewID = crewID
	order.Status = status
	if err := s.store.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	slog.Info("order updated", "order_id", orderID, "crew_id", crewID, "status", status, "actor", actor.Username)
	return s.store.GetOrder(ctx, orderID)
}

// AssignCrew bulk-assigns a delivery crew member to every order belonging
// to the target user. Manager or superuser only. The update is keyed by
// the order owner's user id, not an order id; an empty target set is
// storage.ErrNotFound.
func (s *OrderService) AssignCrew(ctx context.Context, actor auth.Actor, ownerUserID, crewUserID string) error {
	if err := auth.Authorize(actor, auth.OpOrderManage); err != nil {
		return err
	}
	if _, err := s.store.GetUserByID(ctx, crewUserID); err != nil {
		return err
	}
	n, err := s.store.AssignCrewByOwner(ctx, ownerUserID, crewUserID)
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	slog.Info("delivery crew assigned",
		"owner_user_id", ownerUserID,
		"crew_user_id", crewUserID,
		"orders", n,
		"actor", actor.Username,
	)
	return nil
}

// UpdateStatus bulk-updates the status of every order belonging to the
// target user. Delivery crew only; like AssignCrew it is keyed by the
// order owner's user id rather than an order id or the crew assignment.
func (s *OrderService) UpdateStatus(ctx context.Context, actor auth.Actor, ownerUserID string, status bool) error {
	if actor.IsManager() {
		// Managers use AssignCrew / Update; the status path is crew-only.
		return auth.ErrForbidden
	}
	if !actor.IsDeliveryCrew() {
		return auth.ErrForbidden
	}
	n, err := s.store.SetStatusByOwner(ctx, ownerUserID, status)
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	slog.Info("order status updated",
		"owner_user_id", ownerUserID,
		"status", status,
		"orders", n,
		"actor", actor.Username,
	)
	return nil
}

// Delete removes an order and its lines. Manager or superuser only.
func (s *OrderService) Delete(ctx context.Context, actor auth.Actor, orderID string) error {
	if err := auth.Authorize(actor, auth.OpOrderManage); err != nil {
		return err
	}
	if err := s.store.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	slog.Info("order deleted", "order_id", orderID, "actor", actor.Username)
	return nil
}
