// Package auth provides role-based access control and authentication for
// the ordering backend: the Actor value handed to every service call, the
// coarse per-operation policy, JWT session tokens, and password hashing.
package auth

// Role is a named privilege group a user can belong to.
type Role string

const (
	// RoleManager can manage the catalog, orders, and the staff roster.
	RoleManager Role = "manager"

	// RoleDeliveryCrew fulfills assigned orders and updates their status.
	RoleDeliveryCrew Role = "delivery_crew"
)

// ValidRole reports whether r is a known role tag.
func ValidRole(r Role) bool {
	return r == RoleManager || r == RoleDeliveryCrew
}

// Actor is the authenticated entity performing a request. It is built by
// the auth middleware from the token subject plus a fresh role lookup and
// passed explicitly into every service call; there is no ambient
// current-user state.
type Actor struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Superuser bool            `json:"superuser"`
	Roles     map[Role]struct{} `json:"-"`
}

// NewActor builds an Actor from a user identity and its role tags.
func NewActor(id, username string, superuser bool, roles []string) Actor {
	set := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		set[Role(r)] = struct{}{}
	}
	return Actor{ID: id, Username: username, Superuser: superuser, Roles: set}
}

// HasRole reports whether the actor carries the given role tag.
// Superuser status does not imply role membership.
func (a Actor) HasRole(r Role) bool {
	_, ok := a.Roles[r]
	return ok
}

// IsManager reports whether the actor may perform manager operations.
// Superusers always qualify.
func (a Actor) IsManager() bool {
	return a.Superuser || a.HasRole(RoleManager)
}

// IsDeliveryCrew reports whether the actor is on the delivery crew.
func (a Actor) IsDeliveryCrew() bool {
	return a.HasRole(RoleDeliveryCrew)
}

// RoleNames returns the actor's role tags as plain strings.
func (a Actor) RoleNames() []string {
	names := make([]string, 0, len(a.Roles))
	for r := range a.Roles {
		names = append(names, string(r))
	}
	return names
}
