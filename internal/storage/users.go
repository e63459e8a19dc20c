package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"bazaarbot/internal/models"
)

// UserRepo persists Telegram users and their activity counters.
type UserRepo struct {
	db *sqlx.DB
}

// Upsert records a user on first contact and refreshes the volatile fields
// on every later one. It never creates a duplicate row and never touches
// is_registered, phone or city.
func (r *UserRepo) Upsert(ctx context.Context, id int64, username, firstName, lastName string) error {
	const q = `
		INSERT INTO users (user_id, username, first_name, last_name, join_date, last_activity)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			username      = EXCLUDED.username,
			first_name    = EXCLUDED.first_name,
			last_name     = EXCLUDED.last_name,
			last_activity = EXCLUDED.last_activity,
			is_active     = TRUE`
	if _, err := r.db.ExecContext(ctx, q, id, username, firstName, lastName); err != nil {
		return fmt.Errorf("upsert user %d: %w", id, err)
	}
	return nil
}

// Register completes the registration flow, overwriting the profile fields
// collected by the dialogue and flipping is_registered.
func (r *UserRepo) Register(ctx context.Context, id int64, firstName, lastName string, phone, city *string) error {
	const q = `
		UPDATE users
		SET first_name = $2, last_name = $3, phone = $4, city = $5,
		    is_registered = TRUE, updated_at = NOW()
		WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, q, id, firstName, lastName, phone, city)
	if err != nil {
		return fmt.Errorf("register user %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsRegistered reports whether the user has completed registration.
// Unknown users count as unregistered.
func (r *UserRepo) IsRegistered(ctx context.Context, id int64) (bool, error) {
	var registered bool
	err := r.db.GetContext(ctx, &registered, `SELECT is_registered FROM users WHERE user_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("is registered %d: %w", id, err)
	}
	return registered, nil
}

// profileFields is the whitelist of columns the single-field edit flow may touch.
var profileFields = map[string]struct{}{
	"phone":      {},
	"first_name": {},
	"last_name":  {},
	"city":       {},
}

// UpdateProfileField writes one whitelisted profile column.
func (r *UserRepo) UpdateProfileField(ctx context.Context, id int64, field, value string) error {
	if _, ok := profileFields[field]; !ok {
		return fmt.Errorf("update profile %d: field %q not editable", id, field)
	}
	q := fmt.Sprintf(`UPDATE users SET %s = $2, updated_at = NOW() WHERE user_id = $1`, field)
	res, err := r.db.ExecContext(ctx, q, id, value)
	if err != nil {
		return fmt.Errorf("update profile %d.%s: %w", id, field, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchActivity bumps last_activity and the message counter.
func (r *UserRepo) TouchActivity(ctx context.Context, id int64) error {
	const q = `
		UPDATE users
		SET last_activity = NOW(), message_count = message_count + 1
		WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("touch activity %d: %w", id, err)
	}
	return nil
}

// GetByTelegramID returns the user row or ErrNotFound.
func (r *UserRepo) GetByTelegramID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE user_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// ListActive returns all active users, newest first.
func (r *UserRepo) ListActive(ctx context.Context) ([]models.User, error) {
	var users []models.User
	const q = `SELECT * FROM users WHERE is_active = TRUE ORDER BY join_date DESC`
	if err := r.db.SelectContext(ctx, &users, q); err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	return users, nil
}

// ActiveIDs returns the ids of all active users for broadcast fan-out.
func (r *UserRepo) ActiveIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	const q = `SELECT user_id FROM users WHERE is_active = TRUE ORDER BY user_id`
	if err := r.db.SelectContext(ctx, &ids, q); err != nil {
		return nil, fmt.Errorf("active user ids: %w", err)
	}
	return ids, nil
}

// Deactivate soft-disables a user, e.g. after the transport reports the
// chat is gone during a broadcast.
func (r *UserRepo) Deactivate(ctx context.Context, id int64) error {
	const q = `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("deactivate user %d: %w", id, err)
	}
	return nil
}

// Count returns the total number of known users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// DailyStats computes today's aggregates for the admin stats panel.
func (r *UserRepo) DailyStats(ctx context.Context) (models.DailyStats, error) {
	var stats models.DailyStats
	const q = `
		SELECT
			(SELECT COUNT(*) FROM users WHERE join_date::date = CURRENT_DATE)                    AS new_users_today,
			(SELECT COUNT(*) FROM messages WHERE message_date::date = CURRENT_DATE)              AS messages_today,
			(SELECT COUNT(DISTINCT user_id) FROM messages WHERE message_date::date = CURRENT_DATE) AS active_users_today`
	if err := r.db.GetContext(ctx, &stats, q); err != nil {
		return models.DailyStats{}, fmt.Errorf("daily stats: %w", err)
	}
	return stats, nil
}
