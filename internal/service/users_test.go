package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaarbot/internal/models"
	"bazaarbot/internal/storage"
)

type fakeUserStore struct {
	users       map[int64]*models.User
	touchErr    error
	touched     []int64
	fieldWrites map[string]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:       make(map[int64]*models.User),
		fieldWrites: make(map[string]string),
	}
}

func (f *fakeUserStore) Upsert(_ context.Context, id int64, username, firstName, lastName string) error {
	u, ok := f.users[id]
	if !ok {
		u = &models.User{ID: id, IsActive: true}
		f.users[id] = u
	}
	u.Username.Valid = true
	u.Username.String = username
	u.FirstName.Valid = true
	u.FirstName.String = firstName
	u.LastName.Valid = true
	u.LastName.String = lastName
	return nil
}

func (f *fakeUserStore) Register(_ context.Context, id int64, firstName, lastName string, phone, city *string) error {
	u, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.IsRegistered = true
	u.FirstName.Valid = true
	u.FirstName.String = firstName
	u.LastName.Valid = true
	u.LastName.String = lastName
	if phone != nil {
		u.Phone.Valid = true
		u.Phone.String = *phone
	}
	if city != nil {
		u.City.Valid = true
		u.City.String = *city
	}
	return nil
}

func (f *fakeUserStore) IsRegistered(_ context.Context, id int64) (bool, error) {
	u, ok := f.users[id]
	return ok && u.IsRegistered, nil
}

func (f *fakeUserStore) UpdateProfileField(_ context.Context, id int64, field, value string) error {
	if _, ok := f.users[id]; !ok {
		return storage.ErrNotFound
	}
	f.fieldWrites[field] = value
	return nil
}

func (f *fakeUserStore) TouchActivity(_ context.Context, id int64) error {
	if f.touchErr != nil {
		return f.touchErr
	}
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeUserStore) GetByTelegramID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) ListActive(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) ActiveIDs(_ context.Context) ([]int64, error) {
	var ids []int64
	for id, u := range f.users {
		if u.IsActive {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (f *fakeUserStore) Deactivate(_ context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.IsActive = false
	return nil
}

func (f *fakeUserStore) Count(_ context.Context) (int, error) {
	return len(f.users), nil
}

func TestEnsureIsIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUsers(store, NewAudit(&fakeLogStore{}))
	ctx := context.Background()

	require.NoError(t, svc.Ensure(ctx, 42, "ali", "Ali", "Ahmadi"))
	require.NoError(t, svc.Ensure(ctx, 42, "ali2", "Ali", "Ahmadi"))

	assert.Len(t, store.users, 1)
	assert.Equal(t, "ali2", store.users[42].Username.String)
	assert.False(t, store.users[42].IsRegistered, "ensure never flips registration")
}

func TestRegisterCompletesProfile(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUsers(store, NewAudit(&fakeLogStore{}))
	ctx := context.Background()

	require.NoError(t, svc.Ensure(ctx, 42, "ali", "", ""))

	phone := "09120000000"
	require.NoError(t, svc.Register(ctx, 42, "Ali", "Ahmadi", &phone, nil))

	registered, err := svc.IsRegistered(ctx, 42)
	require.NoError(t, err)
	assert.True(t, registered)
	assert.Equal(t, "09120000000", store.users[42].Phone.String)
	assert.False(t, store.users[42].City.Valid, "skipped city stays empty")
}

func TestUpdateProfileField(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUsers(store, NewAudit(&fakeLogStore{}))
	ctx := context.Background()

	require.NoError(t, svc.Ensure(ctx, 1, "u", "", ""))
	require.NoError(t, svc.UpdateProfileField(ctx, 1, "city", "Tehran"))
	assert.Equal(t, "Tehran", store.fieldWrites["city"])
}

func TestTouchActivitySwallowsErrors(t *testing.T) {
	store := newFakeUserStore()
	store.touchErr = errors.New("db gone")
	svc := NewUsers(store, NewAudit(&fakeLogStore{}))

	// Must not panic or propagate.
	svc.TouchActivity(context.Background(), 1)
}
