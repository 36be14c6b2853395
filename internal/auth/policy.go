package auth

import "errors"

var (
	// ErrUnauthorized maps to HTTP 401. Menu item writes by non-managers
	// historically signalled this instead of a plain forbidden.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden maps to HTTP 403.
	ErrForbidden = errors.New("forbidden")
)

// Operation names a coarse capability gated purely on the actor's roles.
// Checks that depend on a loaded record (order ownership, crew assignment)
// live in the services next to the record.
type Operation string

const (
	OpCatalogRead   Operation = "catalog.read"
	OpCategoryWrite Operation = "category.write"
	OpMenuItemWrite Operation = "menuitem.write"
	OpCartAccess    Operation = "cart.access"
	OpOrderCreate   Operation = "order.create"
	OpOrderManage   Operation = "order.manage" // full update, crew assignment, delete
	OpRosterManage  Operation = "roster.manage"
)

// Authorize checks whether the actor may perform the operation. The zero
// Actor is anonymous and only ever denied. Denials on menu item writes are
// ErrUnauthorized, every other denial is ErrForbidden.
func Authorize(a Actor, op Operation) error {
	switch op {
	case OpCatalogRead, OpCartAccess, OpOrderCreate:
		if a.ID == "" {
			return ErrForbidden
		}
		return nil
	case OpMenuItemWrite:
		if !a.IsManager() {
			return ErrUnauthorized
		}
		return nil
	case OpCategoryWrite, OpOrderManage, OpRosterManage:
		if !a.IsManager() {
			return ErrForbidden
		}
		return nil
	}
	return ErrForbidden
}
