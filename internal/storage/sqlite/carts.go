package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"littlelemon/internal/models"
)

// ListCartLines returns all of the user's cart lines.
func (s *SQLiteStore) ListCartLines(ctx context.Context, userID string) ([]*models.CartLine, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, menu_item_id, quantity, unit_price, line_total
		 FROM cart_lines WHERE user_id = ?
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer rows.Close()

	var lines []*models.CartLine
	for rows.Next() {
		line := &models.CartLine{}
		var unitPrice, lineTotal string
		if err := rows.Scan(&line.ID, &line.UserID, &line.MenuItemID,
			&line.Quantity, &unitPrice, &lineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		if line.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("bad unit price %q: %w", unitPrice, err)
		}
		if line.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return nil, fmt.Errorf("bad line total %q: %w", lineTotal, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart lines: %w", err)
	}
	return lines, nil
}

// UpsertCartLine inserts the cart line, or replaces quantity and prices on
// the existing line for the same (user, menu item) pair. The UNIQUE
// constraint on that pair makes repeated adds an update, never a duplicate.
func (s *SQLiteStore) UpsertCartLine(ctx context.Context, line *models.CartLine) error {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_lines (id, user_id, menu_item_id, quantity, unit_price, line_total)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, menu_item_id) DO UPDATE SET
		     quantity = excluded.quantity,
		     unit_price = excluded.unit_price,
		     line_total = excluded.line_total`,
		line.ID, line.UserID, line.MenuItemID, line.Quantity,
		line.UnitPrice.StringFixed(2), line.LineTotal.StringFixed(2),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}
	return nil
}

// ClearCart deletes all of the user's cart lines, returning the count removed.
func (s *SQLiteStore) ClearCart(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cart_lines WHERE user_id = ?", userID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared cart lines: %w", err)
	}
	return n, nil
}
