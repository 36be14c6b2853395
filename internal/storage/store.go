// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"littlelemon/internal/models"
)

var (
	// ErrNotFound is returned when a referenced row does not exist, or a
	// bulk-update target set is empty.
	ErrNotFound = errors.New("not found")

	// ErrReferenced is returned when deleting a row that other rows still
	// reference (protect semantics).
	ErrReferenced = errors.New("row is referenced")
)

// MenuItemFilter narrows and orders a menu item listing. Zero values mean
// "no constraint"; OrderBy is "price" or "title".
type MenuItemFilter struct {
	CategorySlug string
	Featured     *bool
	Search       string
	OrderBy      string
	Desc         bool
	Limit        int
	Offset       int
}

// OrderFilter narrows and orders an order listing. UserID and CrewID are
// mutually exclusive scopes; both empty lists every order. OrderBy is
// "date" or "total".
type OrderFilter struct {
	UserID  string
	CrewID  string
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// Store defines the persistence operations for the ordering backend.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// Users and role tags.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserRoles returns the user's role tags; empty slice when none.
	GetUserRoles(ctx context.Context, userID string) ([]string, error)
	// AddUserRole is idempotent: adding an already-held role succeeds.
	AddUserRole(ctx context.Context, userID, role string) error
	// RemoveUserRole returns ErrNotFound when the user does not hold the role.
	RemoveUserRole(ctx context.Context, userID, role string) error
	ListUsersByRole(ctx context.Context, role string) ([]*models.User, error)
	// UserHasRole reports role membership without loading the user.
	UserHasRole(ctx context.Context, userID, role string) (bool, error)
	// SetSuperuser flips the user's superuser flag.
	SetSuperuser(ctx context.Context, userID string, superuser bool) error

	// Catalog.
	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	// DeleteCategory returns ErrReferenced while any menu item references
	// the category.
	DeleteCategory(ctx context.Context, id string) error
	ListMenuItems(ctx context.Context, filter MenuItemFilter) ([]*models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	GetMenuItemByTitle(ctx context.Context, title string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error

	// Cart.
	ListCartLines(ctx context.Context, userID string) ([]*models.CartLine, error)
	// UpsertCartLine inserts the line or, when one exists for the same
	// (user, menu item) pair, replaces its quantity and prices.
	UpsertCartLine(ctx context.Context, line *models.CartLine) error
	// ClearCart deletes all of the user's cart lines and returns how many
	// were removed.
	ClearCart(ctx context.Context, userID string) (int64, error)

	// Orders.
	// CreateOrderFromCart atomically snapshots the user's cart into a new
	// order with one line per cart line, then clears the cart. An empty
	// cart yields an order with total 0 and no lines.
	CreateOrderFromCart(ctx context.Context, userID string) (*models.Order, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]*models.Order, error)
	// GetOrder loads an order with its lines.
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	// UpdateOrder replaces the order's delivery crew and status.
	UpdateOrder(ctx context.Context, order *models.Order) error
	// AssignCrewByOwner sets the delivery crew on every order owned by
	// ownerID, returning the number of rows touched.
	AssignCrewByOwner(ctx context.Context, ownerID, crewID string) (int64, error)
	// SetStatusByOwner sets the status on every order owned by ownerID,
	// returning the number of rows touched.
	SetStatusByOwner(ctx context.Context, ownerID string, status bool) (int64, error)
	DeleteOrder(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
