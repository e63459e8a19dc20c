package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bazaarbot/internal/models"
)

// OrderRepo persists purchase orders and enforces terminal transitions.
type OrderRepo struct {
	db *sqlx.DB
}

// Create inserts a pending order carrying the price snapshot taken when the
// buyer pressed the buy button.
func (r *OrderRepo) Create(ctx context.Context, userID, productID, price int64, screenshotFileID string) (int64, error) {
	const q = `
		INSERT INTO orders (user_id, product_id, price, status, screenshot_file_id)
		VALUES ($1, $2, $3, 'pending', $4)
		RETURNING id`
	var id int64
	if err := r.db.GetContext(ctx, &id, q, userID, productID, price, screenshotFileID); err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	return id, nil
}

// Get returns an order joined with its product name, or ErrNotFound.
func (r *OrderRepo) Get(ctx context.Context, id int64) (*models.Order, error) {
	var o models.Order
	const q = `
		SELECT o.*, p.name AS product_name
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.id = $1`
	err := r.db.GetContext(ctx, &o, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return &o, nil
}

// ListByUser returns a user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	const q = `
		SELECT o.*, p.name AS product_name
		FROM orders o
		JOIN products p ON p.id = o.product_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`
	if err := r.db.SelectContext(ctx, &orders, q, userID); err != nil {
		return nil, fmt.Errorf("list orders of user %d: %w", userID, err)
	}
	return orders, nil
}

// PaginatePending returns one review-queue page, oldest first so earlier
// payments get reviewed first.
func (r *OrderRepo) PaginatePending(ctx context.Context, page, perPage int) (Page[models.Order], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders WHERE status = 'pending'`); err != nil {
		return Page[models.Order]{}, fmt.Errorf("paginate pending orders: %w", err)
	}

	var items []models.Order
	const q = `
		SELECT o.*, p.name AS product_name, u.username, u.first_name
		FROM orders o
		JOIN products p ON p.id = o.product_id
		JOIN users u ON u.user_id = o.user_id
		WHERE o.status = 'pending'
		ORDER BY o.created_at ASC
		LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &items, q, perPage, PageOffset(page, perPage)); err != nil {
		return Page[models.Order]{}, fmt.Errorf("paginate pending orders: %w", err)
	}
	return NewPage(items, page, perPage, total), nil
}

// Decide moves a pending order into a terminal status with admin
// attribution. Repeating the same decision is a no-op; flipping an already
// decided order to the other terminal status returns ErrOrderDecided and
// leaves the first decision untouched.
func (r *OrderRepo) Decide(ctx context.Context, id int64, status models.OrderStatus, adminID int64, rejectionReason *string) error {
	if !status.Terminal() {
		return fmt.Errorf("decide order %d: status %q is not terminal", id, status)
	}

	var (
		res sql.Result
		err error
	)
	if status == models.OrderApproved {
		const q = `
			UPDATE orders
			SET status = 'approved', admin_id = $2, approved_at = NOW(),
			    updated_at = NOW(), rejection_reason = NULL
			WHERE id = $1 AND status = 'pending'`
		res, err = r.db.ExecContext(ctx, q, id, adminID)
	} else {
		const q = `
			UPDATE orders
			SET status = 'rejected', admin_id = $2, rejection_reason = $3,
			    updated_at = NOW()
			WHERE id = $1 AND status = 'pending'`
		res, err = r.db.ExecContext(ctx, q, id, adminID, rejectionReason)
	}
	if err != nil {
		return fmt.Errorf("decide order %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// Nothing was pending: either the order is unknown, already carries
	// this status (idempotent no-op), or was decided the other way.
	var current models.OrderStatus
	err = r.db.GetContext(ctx, &current, `SELECT status FROM orders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("decide order %d: %w", id, err)
	}
	if current == status {
		return nil
	}
	return ErrOrderDecided
}
