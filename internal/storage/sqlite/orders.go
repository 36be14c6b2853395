package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"littlelemon/internal/models"
	"littlelemon/internal/storage"
)

// CreateOrderFromCart snapshots the user's cart into a new order inside a
// single transaction: read cart lines, insert the order, insert one order
// line per cart line, delete the cart lines, commit. A crash or concurrent
// checkout can never leave a half-created order or a stale cart.
func (s *SQLiteStore) CreateOrderFromCart(ctx context.Context, userID string) (*models.Order, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT id, menu_item_id, quantity, unit_price, line_total
		 FROM cart_lines WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	type cartRow struct {
		menuItemID string
		quantity   int
		unitPrice  string
		lineTotal  string
	}
	var cart []cartRow
	for rows.Next() {
		var id string
		var r cartRow
		if err := rows.Scan(&id, &r.menuItemID, &r.quantity, &r.unitPrice, &r.lineTotal); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		cart = append(cart, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart: %w", err)
	}

	order := &models.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Total:     decimal.Zero,
		CreatedAt: time.Now().Unix(),
	}
	order.Date = models.OrderDate(order.CreatedAt)

	for _, r := range cart {
		lineTotal, err := decimal.NewFromString(r.lineTotal)
		if err != nil {
			return nil, fmt.Errorf("bad line total %q: %w", r.lineTotal, err)
		}
		unitPrice, err := decimal.NewFromString(r.unitPrice)
		if err != nil {
			return nil, fmt.Errorf("bad unit price %q: %w", r.unitPrice, err)
		}
		order.Total = order.Total.Add(lineTotal)
		order.Lines = append(order.Lines, models.OrderLine{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			MenuItemID: r.menuItemID,
			Quantity:   r.quantity,
			UnitPrice:  unitPrice,
			LineTotal:  lineTotal,
		})
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, user_id, delivery_crew_id, status, total, created_at)
		 VALUES (?, ?, NULL, 0, ?, ?)`,
		order.ID, order.UserID, order.Total.StringFixed(2), order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, line := range order.Lines {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_lines (id, order_id, menu_item_id, quantity, unit_price, line_total)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			line.ID, line.OrderID, line.MenuItemID, line.Quantity,
			line.UnitPrice.StringFixed(2), line.LineTotal.StringFixed(2),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order line: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_lines WHERE user_id = ?", userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return order, nil
}

func scanOrder(scan func(dest ...any) error) (*models.Order, error) {
	order := &models.Order{}
	var crew sql.NullString
	var status int
	var total string
	if err := scan(&order.ID, &order.UserID, &crew, &status, &total, &order.CreatedAt); err != nil {
		return nil, err
	}
	if crew.Valid {
		order.DeliveryCrewID = crew.String
	}
	order.Status = status != 0
	t, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("bad total %q: %w", total, err)
	}
	order.Total = t
	order.Date = models.OrderDate(order.CreatedAt)
	return order, nil
}

// ListOrders returns orders matching the filter, without lines.
func (s *SQLiteStore) ListOrders(ctx context.Context, filter storage.OrderFilter) ([]*models.Order, error) {
	query := `SELECT id, user_id, delivery_crew_id, status, total, created_at FROM orders`
	var args []any

	switch {
	case filter.UserID != "":
		query += " WHERE user_id = ?"
		args = append(args, filter.UserID)
	case filter.CrewID != "":
		query += " WHERE delivery_crew_id = ?"
		args = append(args, filter.CrewID)
	}

	switch filter.OrderBy {
	case "total":
		query += " ORDER BY CAST(total AS REAL)"
	default:
		query += " ORDER BY created_at"
	}
	if filter.Desc {
		query += " DESC"
	}
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// GetOrder retrieves an order by ID including its lines.
func (s *SQLiteStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, delivery_crew_id, status, total, created_at
		 FROM orders WHERE id = ?`, id,
	)
	order, err := scanOrder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	lineRows, err := s.db.QueryContext(ctx,
		`SELECT id, order_id, menu_item_id, quantity, unit_price, line_total
		 FROM order_lines WHERE order_id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var line models.OrderLine
		var unitPrice, lineTotal string
		if err := lineRows.Scan(&line.ID, &line.OrderID, &line.MenuItemID,
			&line.Quantity, &unitPrice, &lineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		if line.UnitPrice, err = decimal.NewFromString(unitPrice); err != nil {
			return nil, fmt.Errorf("bad unit price %q: %w", unitPrice, err)
		}
		if line.LineTotal, err = decimal.NewFromString(lineTotal); err != nil {
			return nil, fmt.Errorf("bad line total %q: %w", lineTotal, err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}
	return order, nil
}

// UpdateOrder replaces the order's delivery crew and status. Total, owner
// and date are immutable after creation.
func (s *SQLiteStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	var crew any
	if order.DeliveryCrewID != "" {
		crew = order.DeliveryCrewID
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET delivery_crew_id = ?, status = ? WHERE id = ?",
		crew, boolToInt(order.Status), order.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated orders: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// AssignCrewByOwner sets the delivery crew on every order owned by ownerID.
func (s *SQLiteStore) AssignCrewByOwner(ctx context.Context, ownerID, crewID string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET delivery_crew_id = ? WHERE user_id = ?",
		crewID, ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to assign delivery crew: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count assigned orders: %w", err)
	}
	return n, nil
}

// SetStatusByOwner sets the status on every order owned by ownerID.
func (s *SQLiteStore) SetStatusByOwner(ctx context.Context, ownerID string, status bool) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = ? WHERE user_id = ?",
		boolToInt(status), ownerID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to set order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count updated orders: %w", err)
	}
	return n, nil
}

// DeleteOrder removes an order; its lines cascade.
func (s *SQLiteStore) DeleteOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted orders: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
