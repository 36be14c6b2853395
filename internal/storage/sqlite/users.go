package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"littlelemon/internal/models"
	"littlelemon/internal/storage"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, superuser, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash,
		boolToInt(user.Superuser), user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id = ?", id)
}

// GetUserByUsername retrieves a user by their login name.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "username = ?", username)
}

func (s *SQLiteStore) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	user := &models.User{}
	var superuser int
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, superuser, created_at
		 FROM users WHERE `+where, arg,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &superuser, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.Superuser = superuser != 0
	return user, nil
}

// GetUserRoles returns the user's role tags.
func (s *SQLiteStore) GetUserRoles(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT role FROM user_roles WHERE user_id = ? ORDER BY role", userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roles: %w", err)
	}
	return roles, nil
}

// AddUserRole adds the role tag to the user. Role membership is a set, so
// re-adding a held role is a no-op, not an error.
func (s *SQLiteStore) AddUserRole(ctx context.Context, userID, role string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO user_roles (user_id, role) VALUES (?, ?)",
		userID, role,
	)
	if err != nil {
		return fmt.Errorf("failed to add user role: %w", err)
	}
	return nil
}

// RemoveUserRole removes the role tag from the user.
// Returns storage.ErrNotFound if the user did not hold the role.
func (s *SQLiteStore) RemoveUserRole(ctx context.Context, userID, role string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM user_roles WHERE user_id = ? AND role = ?",
		userID, role,
	)
	if err != nil {
		return fmt.Errorf("failed to remove user role: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count removed roles: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListUsersByRole returns every user holding the given role tag.
func (s *SQLiteStore) ListUsersByRole(ctx context.Context, role string) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.superuser, u.created_at
		 FROM users u
		 JOIN user_roles r ON r.user_id = u.id
		 WHERE r.role = ?
		 ORDER BY u.username`,
		role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		var superuser int
		if err := rows.Scan(&user.ID, &user.Username, &user.Email,
			&user.PasswordHash, &superuser, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		user.Superuser = superuser != 0
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

// UserHasRole reports whether the user holds the role tag.
func (s *SQLiteStore) UserHasRole(ctx context.Context, userID, role string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM user_roles WHERE user_id = ? AND role = ?",
		userID, role,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return true, nil
}

// SetSuperuser flips the user's superuser flag.
func (s *SQLiteStore) SetSuperuser(ctx context.Context, userID string, superuser bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET superuser = ? WHERE id = ?",
		boolToInt(superuser), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set superuser: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated users: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
