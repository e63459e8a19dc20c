package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(d time.Duration) (*Registry, *time.Time) {
	r := NewRegistry(d)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }
	return r, &current
}

func TestSessionExpiryBoundaries(t *testing.T) {
	const d = 3600 * time.Second
	r, now := newTestRegistry(d)
	start := *now

	r.Create(7)
	assert.True(t, r.IsValid(7), "valid immediately after creation")

	*now = start.Add(d - time.Second)
	assert.True(t, r.IsValid(7), "valid at D-1")

	*now = start.Add(d)
	assert.True(t, r.IsValid(7), "still valid exactly at D")

	*now = start.Add(d + time.Second)
	assert.False(t, r.IsValid(7), "invalid strictly after D")

	// Lazy eviction removed the entry.
	_, ok := r.Get(7)
	assert.False(t, ok)
}

func TestReloginExtendsWithoutStacking(t *testing.T) {
	r, now := newTestRegistry(time.Hour)
	start := *now

	first := r.Create(1)
	*now = start.Add(30 * time.Minute)
	second := r.Create(1)

	require.True(t, second.ExpiresAt.After(first.ExpiresAt))
	assert.Equal(t, now.Add(time.Hour), second.ExpiresAt, "expiry counts from re-login, not from first login")

	s, ok := r.Get(1)
	require.True(t, ok)
	assert.Equal(t, second, s, "re-login overwrites the prior session")
}

func TestInvalidate(t *testing.T) {
	r, _ := newTestRegistry(time.Hour)
	r.Create(5)
	r.Invalidate(5)
	assert.False(t, r.IsValid(5))
}

func TestSweep(t *testing.T) {
	r, now := newTestRegistry(time.Minute)
	start := *now

	r.Create(1)
	r.Create(2)
	*now = start.Add(30 * time.Second)
	r.Create(3)

	*now = start.Add(90 * time.Second)
	removed := r.Sweep()
	assert.Equal(t, 2, removed)
	assert.True(t, r.IsValid(3))
	assert.False(t, r.IsValid(1))
	assert.False(t, r.IsValid(2))
}
