package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// LogRepo persists audit log entries and inbound message records.
// Writes here are telemetry: callers are expected to discard errors so a
// failed audit entry never aborts the user-facing operation.
type LogRepo struct {
	db *sqlx.DB
}

// AddLog records an audit entry attributed to a user (0 for system).
func (r *LogRepo) AddLog(ctx context.Context, userID int64, action, details string) error {
	const q = `INSERT INTO logs (user_id, action, details) VALUES (NULLIF($1, 0), $2, $3)`
	if _, err := r.db.ExecContext(ctx, q, userID, action, details); err != nil {
		return fmt.Errorf("add log %q: %w", action, err)
	}
	return nil
}

// AddMessage records an inbound message for the daily activity stats.
func (r *LogRepo) AddMessage(ctx context.Context, userID int64, text, kind string) error {
	const q = `INSERT INTO messages (user_id, message_text, message_type) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, q, userID, text, kind); err != nil {
		return fmt.Errorf("add message: %w", err)
	}
	return nil
}
