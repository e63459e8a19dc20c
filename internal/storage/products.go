package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bazaarbot/internal/models"
)

// ProductRepo persists catalog products.
type ProductRepo struct {
	db *sqlx.DB
}

// Create inserts a product and returns its id.
func (r *ProductRepo) Create(ctx context.Context, name string, price int64, imageURL, description *string) (int64, error) {
	const q = `
		INSERT INTO products (name, price, image_url, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	if err := r.db.GetContext(ctx, &id, q, name, price, imageURL, description); err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	return id, nil
}

// Get returns a product by id regardless of its active flag, so existing
// orders keep resolving after a soft delete.
func (r *ProductRepo) Get(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.db.GetContext(ctx, &p, `SELECT * FROM products WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

// productFields is the whitelist of columns the single-field edit flow may touch.
var productFields = map[string]struct{}{
	"name":        {},
	"price":       {},
	"image_url":   {},
	"description": {},
}

// UpdateField writes one whitelisted product column.
func (r *ProductRepo) UpdateField(ctx context.Context, id int64, field string, value any) error {
	if _, ok := productFields[field]; !ok {
		return fmt.Errorf("update product %d: field %q not editable", id, field)
	}
	q := fmt.Sprintf(`UPDATE products SET %s = $2, updated_at = NOW() WHERE id = $1`, field)
	res, err := r.db.ExecContext(ctx, q, id, value)
	if err != nil {
		return fmt.Errorf("update product %d.%s: %w", id, field, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks a product inactive, keeping order history intact.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64) error {
	const q = `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActive returns the number of active products.
func (r *ProductRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products WHERE is_active = TRUE`); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Paginate returns one page of active products, newest first.
func (r *ProductRepo) Paginate(ctx context.Context, page, perPage int) (Page[models.Product], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM products WHERE is_active = TRUE`); err != nil {
		return Page[models.Product]{}, fmt.Errorf("paginate products: %w", err)
	}

	var items []models.Product
	const q = `
		SELECT * FROM products
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &items, q, perPage, PageOffset(page, perPage)); err != nil {
		return Page[models.Product]{}, fmt.Errorf("paginate products: %w", err)
	}
	return NewPage(items, page, perPage, total), nil
}
