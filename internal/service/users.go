// Package service wraps the persistence gateway with domain rules and
// component-scoped structured logging.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"bazaarbot/core/logger"
	"bazaarbot/internal/models"
)

// UsersStore is the slice of the persistence gateway the user service needs.
type UsersStore interface {
	Upsert(ctx context.Context, id int64, username, firstName, lastName string) error
	Register(ctx context.Context, id int64, firstName, lastName string, phone, city *string) error
	IsRegistered(ctx context.Context, id int64) (bool, error)
	UpdateProfileField(ctx context.Context, id int64, field, value string) error
	TouchActivity(ctx context.Context, id int64) error
	GetByTelegramID(ctx context.Context, id int64) (*models.User, error)
	ListActive(ctx context.Context) ([]models.User, error)
	ActiveIDs(ctx context.Context) ([]int64, error)
	Deactivate(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

// Users manages user rows and profiles.
type Users struct {
	store UsersStore
	audit *Audit
}

// NewUsers builds the user service.
func NewUsers(store UsersStore, audit *Audit) *Users {
	return &Users{store: store, audit: audit}
}

// Ensure records the user on first contact and refreshes contact fields on
// every later one. Calling it twice never duplicates a row and never flips
// the registered flag.
func (s *Users) Ensure(ctx context.Context, id int64, username, firstName, lastName string) error {
	if err := s.store.Upsert(ctx, id, username, firstName, lastName); err != nil {
		logger.Error(ctx, "service.users", "user.ensure.fail",
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("ensure user: %w", err)
	}
	_ = s.audit.Record(ctx, id, "user_added", fmt.Sprintf("user %s added", username))
	return nil
}

// Register completes the registration flow.
func (s *Users) Register(ctx context.Context, id int64, firstName, lastName string, phone, city *string) error {
	if err := s.store.Register(ctx, id, firstName, lastName, phone, city); err != nil {
		logger.Error(ctx, "service.users", "user.register.fail",
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("register user: %w", err)
	}
	logger.Info(ctx, "service.users", "user.registered",
		slog.Int64("user_id", id),
	)
	_ = s.audit.Record(ctx, id, "user_registered", fmt.Sprintf("user %s %s registered", firstName, lastName))
	return nil
}

// IsRegistered reports whether the registration flow was completed.
func (s *Users) IsRegistered(ctx context.Context, id int64) (bool, error) {
	return s.store.IsRegistered(ctx, id)
}

// UpdateProfileField writes one whitelisted profile column.
func (s *Users) UpdateProfileField(ctx context.Context, id int64, field, value string) error {
	if err := s.store.UpdateProfileField(ctx, id, field, value); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	_ = s.audit.Record(ctx, id, "profile_updated", fmt.Sprintf("field %s updated", field))
	return nil
}

// TouchActivity bumps activity metadata; failures are telemetry-grade.
func (s *Users) TouchActivity(ctx context.Context, id int64) {
	if err := s.store.TouchActivity(ctx, id); err != nil {
		logger.Warn(ctx, "service.users", "user.activity.fail",
			slog.Int64("user_id", id),
			slog.String("err", err.Error()),
		)
	}
}

// GetUserByTelegramID resolves a Telegram id to the stored user.
func (s *Users) GetUserByTelegramID(ctx context.Context, id int64) (*models.User, error) {
	return s.store.GetByTelegramID(ctx, id)
}

// ListActive returns all active users, newest first.
func (s *Users) ListActive(ctx context.Context) ([]models.User, error) {
	return s.store.ListActive(ctx)
}

// ActiveIDs returns the broadcast recipient list.
func (s *Users) ActiveIDs(ctx context.Context) ([]int64, error) {
	return s.store.ActiveIDs(ctx)
}

// Deactivate soft-disables a user.
func (s *Users) Deactivate(ctx context.Context, id int64) error {
	return s.store.Deactivate(ctx, id)
}

// Count returns the number of known users.
func (s *Users) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}
