package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable record created from a user's cart at checkout.
//
// Status is binary: false while pending or out for delivery, true once
// delivered. The data model deliberately does not require a delivery crew
// to be assigned before the status flips.
type Order struct {
	// ID is the unique identifier for the order (UUID format).
	ID string `json:"id"`

	// UserID is the user who placed the order.
	UserID string `json:"user_id"`

	// DeliveryCrewID is the assigned crew member, empty until a manager
	// assigns one.
	DeliveryCrewID string `json:"delivery_crew_id,omitempty"`

	// Status is true once the assigned crew marks the order delivered.
	Status bool `json:"status"`

	// Total is the sum of line totals at creation time, immutable after.
	Total decimal.Decimal `json:"total"`

	// CreatedAt is the Unix timestamp when the order was placed.
	CreatedAt int64 `json:"created_at"`

	// Date is the creation date in YYYY-MM-DD form (UTC), derived from
	// CreatedAt on reads.
	Date string `json:"date"`

	// Lines are the order's line items, populated on single-order reads.
	Lines []OrderLine `json:"order_lines,omitempty"`
}

// OrderDate formats a creation timestamp as a YYYY-MM-DD date (UTC).
func OrderDate(createdAt int64) string {
	return time.Unix(createdAt, 0).UTC().Format("2006-01-02")
}

// OrderLine is one menu item included in an order. Quantity and prices are
// copied verbatim from the consumed cart line.
type OrderLine struct {
	// ID is the unique identifier for the line (UUID format).
	ID string `json:"id"`

	// OrderID references the owning order.
	OrderID string `json:"order_id"`

	// MenuItemID references the ordered menu item.
	MenuItemID string `json:"menu_item_id"`

	// Quantity is the ordered amount.
	Quantity int `json:"quantity"`

	// UnitPrice is the per-unit price snapshotted at add-to-cart time.
	UnitPrice decimal.Decimal `json:"unit_price"`

	// LineTotal is UnitPrice * Quantity.
	LineTotal decimal.Decimal `json:"line_total"`
}
