package models

// User represents a registered account.
//
// Role membership (manager, delivery crew) is stored as a set of tags in
// the user_roles table and resolved per request, so revoking a role takes
// effect on the next call without reissuing tokens.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is the user's email address.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized.
	PasswordHash string `json:"-"`

	// Superuser grants unconditional access and supersedes role checks.
	Superuser bool `json:"superuser,omitempty"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}
