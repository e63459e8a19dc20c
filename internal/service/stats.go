package service

import (
	"context"
	"fmt"

	"bazaarbot/internal/models"
)

// StatsStore is the aggregate slice of the persistence gateway.
type StatsStore interface {
	DailyStats(ctx context.Context) (models.DailyStats, error)
}

// Stats serves the admin statistics panel.
type Stats struct {
	store StatsStore
	users *Users
}

// NewStats builds the stats service.
func NewStats(store StatsStore, users *Users) *Stats {
	return &Stats{store: store, users: users}
}

// Overview groups the counters rendered on the stats panel.
type Overview struct {
	TotalUsers int
	Daily      models.DailyStats
}

// Overview computes today's aggregates and the total user count.
func (s *Stats) Overview(ctx context.Context) (Overview, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("stats overview: %w", err)
	}
	daily, err := s.store.DailyStats(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("stats overview: %w", err)
	}
	return Overview{TotalUsers: total, Daily: daily}, nil
}
