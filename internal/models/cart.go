package models

import "github.com/shopspring/decimal"

// CartLine is a single item selection in a user's pending cart.
//
// At most one line exists per (user, menu item) pair: adding the same item
// again replaces the existing line instead of duplicating it.
type CartLine struct {
	// ID is the unique identifier for the line (UUID format).
	ID string `json:"id"`

	// UserID is the owning user. Carts are strictly per-user; no other
	// actor may read or mutate them.
	UserID string `json:"user_id"`

	// MenuItemID references the selected menu item.
	MenuItemID string `json:"menu_item_id"`

	// Quantity is a positive integer.
	Quantity int `json:"quantity"`

	// UnitPrice snapshots MenuItem.Price at add-time.
	UnitPrice decimal.Decimal `json:"unit_price"`

	// LineTotal is UnitPrice * Quantity, computed at add-time.
	LineTotal decimal.Decimal `json:"line_total"`
}
