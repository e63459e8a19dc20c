package service

import (
	"context"
	"log/slog"

	"bazaarbot/core/logger"
)

// AuditStore is the telemetry slice of the persistence gateway.
type AuditStore interface {
	AddLog(ctx context.Context, userID int64, action, details string) error
	AddMessage(ctx context.Context, userID int64, text, kind string) error
}

// Audit records action and message telemetry. A failed write must never
// abort the operation that produced it: every method returns the error so
// the contract is explicit, and callers are allowed to discard it.
type Audit struct {
	store AuditStore
}

// NewAudit builds the audit service.
func NewAudit(store AuditStore) *Audit {
	return &Audit{store: store}
}

// Record writes one audit entry.
func (s *Audit) Record(ctx context.Context, userID int64, action, details string) error {
	if err := s.store.AddLog(ctx, userID, action, details); err != nil {
		logger.Warn(ctx, "service.audit", "audit.log.fail",
			slog.String("action", action),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}

// Message records an inbound message for daily stats.
func (s *Audit) Message(ctx context.Context, userID int64, text, kind string) error {
	if err := s.store.AddMessage(ctx, userID, text, kind); err != nil {
		logger.Warn(ctx, "service.audit", "audit.message.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return err
	}
	return nil
}
