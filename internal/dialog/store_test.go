package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.Get(1))
	assert.False(t, s.InProgress(1))

	s.Set(1, Registration{Step: RegWaitingName})
	require.True(t, s.InProgress(1))

	st, ok := s.Get(1).(Registration)
	require.True(t, ok)
	assert.Equal(t, RegWaitingName, st.Step)

	s.Clear(1)
	assert.False(t, s.InProgress(1))
	assert.Equal(t, 0, s.Len())
}

func TestStoreIsolatedPerUser(t *testing.T) {
	s := NewStore()
	s.Set(1, Purchase{ProductID: 10, Price: 50000})
	s.Set(2, AwaitingPassword{})

	_, buying := s.Get(1).(Purchase)
	_, waiting := s.Get(2).(AwaitingPassword)
	assert.True(t, buying)
	assert.True(t, waiting)

	s.Clear(1)
	assert.False(t, s.InProgress(1))
	assert.True(t, s.InProgress(2))
}

// Step progress is carried by value: mutating a copy must not leak back
// until Set is called again.
func TestStateValueSemantics(t *testing.T) {
	s := NewStore()
	s.Set(5, Registration{Step: RegWaitingName})

	st := s.Get(5).(Registration)
	st.Step = RegWaitingCity
	got := s.Get(5).(Registration)
	assert.Equal(t, RegWaitingName, got.Step)

	s.Set(5, st)
	assert.Equal(t, RegWaitingCity, s.Get(5).(Registration).Step)
}
