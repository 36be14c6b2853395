// Package service implements the core business logic of the ordering
// backend: catalog management, per-user carts, the order lifecycle, and
// the staff roster. Every operation takes an explicit auth.Actor and
// performs its own authorization before touching storage.
package service

import "errors"

// Validation failures. Handlers map these to a 400 response.
var (
	ErrInvalidPrice    = errors.New("price must be greater than or equal to 0")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrDuplicateTitle  = errors.New("a menu item with this title already exists")
	ErrUnknownCategory = errors.New("category does not exist")
	ErrMissingField    = errors.New("required field is missing")
)

// ErrCategoryInUse is the referential integrity violation: the category is
// still referenced by at least one menu item and cannot be deleted.
var ErrCategoryInUse = errors.New("category is referenced by menu items")
