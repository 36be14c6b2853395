package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"littlelemon/internal/models"
	"littlelemon/internal/storage"
)

// ListCategories returns all categories ordered by title.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, slug, title FROM categories ORDER BY title",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// CreateCategory inserts a new category, generating an ID if unset.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, slug, title) VALUES (?, ?, ?)",
		category.ID, category.Slug, category.Title,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category by ID.
func (s *SQLiteStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, slug, title FROM categories WHERE id = ?", id,
	).Scan(&c.ID, &c.Slug, &c.Title)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category. A category referenced by any menu
// item is protected and yields storage.ErrReferenced.
func (s *SQLiteStore) DeleteCategory(ctx context.Context, id string) error {
	var refs int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM menu_items WHERE category_id = ?", id,
	).Scan(&refs)
	if err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if refs > 0 {
		return storage.ErrReferenced
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted categories: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const menuItemColumns = `m.id, m.title, m.price, m.featured, m.category_id, c.id, c.slug, c.title`

func scanMenuItem(scan func(dest ...any) error) (*models.MenuItem, error) {
	item := &models.MenuItem{Category: &models.Category{}}
	var price string
	var featured int
	if err := scan(&item.ID, &item.Title, &price, &featured, &item.CategoryID,
		&item.Category.ID, &item.Category.Slug, &item.Category.Title); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("bad price %q: %w", price, err)
	}
	item.Price = p
	item.PriceAfterTax = models.PriceAfterTax(p)
	item.Featured = featured != 0
	return item, nil
}

// ListMenuItems returns menu items matching the filter, with categories
// resolved and price_after_tax recomputed.
func (s *SQLiteStore) ListMenuItems(ctx context.Context, filter storage.MenuItemFilter) ([]*models.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + `
		FROM menu_items m JOIN categories c ON c.id = m.category_id`
	var args []any
	var where []string

	if filter.CategorySlug != "" {
		where = append(where, "c.slug = ?")
		args = append(args, filter.CategorySlug)
	}
	if filter.Featured != nil {
		where = append(where, "m.featured = ?")
		args = append(args, boolToInt(*filter.Featured))
	}
	if filter.Search != "" {
		where = append(where, "m.title LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	switch filter.OrderBy {
	case "price":
		// price is TEXT; cast so "9.00" sorts below "15.00"
		query += " ORDER BY CAST(m.price AS REAL)"
	case "title":
		query += " ORDER BY m.title"
	default:
		query += " ORDER BY m.title"
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
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []*models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate menu items: %w", err)
	}
	return items, nil
}

// GetMenuItem retrieves a menu item by ID with its category resolved.
func (s *SQLiteStore) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	return s.getMenuItem(ctx, "m.id = ?", id)
}

// GetMenuItemByTitle retrieves a menu item by its unique title.
func (s *SQLiteStore) GetMenuItemByTitle(ctx context.Context, title string) (*models.MenuItem, error) {
	return s.getMenuItem(ctx, "m.title = ?", title)
}

func (s *SQLiteStore) getMenuItem(ctx context.Context, where string, arg any) (*models.MenuItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+menuItemColumns+`
		 FROM menu_items m JOIN categories c ON c.id = m.category_id
		 WHERE `+where, arg,
	)
	item, err := scanMenuItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

// CreateMenuItem inserts a new menu item, generating an ID if unset.
func (s *SQLiteStore) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO menu_items (id, title, price, featured, category_id)
		 VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Price.StringFixed(2), boolToInt(item.Featured), item.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert menu item: %w", err)
	}
	return nil
}

// UpdateMenuItem replaces the stored fields of an existing menu item.
func (s *SQLiteStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE menu_items SET title = ?, price = ?, featured = ?, category_id = ?
		 WHERE id = ?`,
		item.Title, item.Price.StringFixed(2), boolToInt(item.Featured), item.CategoryID, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count updated menu items: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteMenuItem removes a menu item by ID.
func (s *SQLiteStore) DeleteMenuItem(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted menu items: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
