package models

import "github.com/shopspring/decimal"

// taxMultiplier is the fixed 10% tax applied on top of every menu price.
var taxMultiplier = decimal.RequireFromString("1.10")

// Category represents a menu section. Deleting a category that is still
// referenced by a menu item is rejected by the store (protect semantics).
type Category struct {
	// ID is the unique identifier for the category (UUID format).
	ID string `json:"id"`

	// Slug is the url-safe identifier (e.g. "mains").
	Slug string `json:"slug"`

	// Title is the display name. Unique by convention, not enforced.
	Title string `json:"title"`
}

// MenuItem represents a priced dish on the menu.
type MenuItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Title is the display name, unique across menu items.
	Title string `json:"title"`

	// Price is the pre-tax price, non-negative, two fraction digits.
	Price decimal.Decimal `json:"price"`

	// PriceAfterTax is derived from Price on every read, never stored.
	PriceAfterTax decimal.Decimal `json:"price_after_tax"`

	// Featured marks items highlighted on the menu.
	Featured bool `json:"featured"`

	// CategoryID references the owning category, required.
	CategoryID string `json:"category_id"`

	// Category is the resolved category, populated on reads.
	Category *Category `json:"category,omitempty"`
}

// PriceAfterTax returns price * 1.10 rounded to two fraction digits.
func PriceAfterTax(price decimal.Decimal) decimal.Decimal {
	return price.Mul(taxMultiplier).Round(2)
}
