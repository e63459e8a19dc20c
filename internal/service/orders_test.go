package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaarbot/internal/models"
	"bazaarbot/internal/storage"
)

type fakeLogStore struct {
	logs     []string
	messages []string
}

func (f *fakeLogStore) AddLog(_ context.Context, _ int64, action, _ string) error {
	f.logs = append(f.logs, action)
	return nil
}

func (f *fakeLogStore) AddMessage(_ context.Context, _ int64, text, _ string) error {
	f.messages = append(f.messages, text)
	return nil
}

// fakeOrderStore mirrors the repository's terminal-transition contract:
// repeating a decision is a no-op, flipping one fails.
type fakeOrderStore struct {
	nextID  int64
	orders  map[int64]*models.Order
	reasons map[int64]*string
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:  make(map[int64]*models.Order),
		reasons: make(map[int64]*string),
	}
}

func (f *fakeOrderStore) Create(_ context.Context, userID, productID, price int64, screenshotFileID string) (int64, error) {
	f.nextID++
	f.orders[f.nextID] = &models.Order{
		ID:        f.nextID,
		UserID:    userID,
		ProductID: productID,
		Price:     price,
		Status:    models.OrderPending,
	}
	return f.nextID, nil
}

func (f *fakeOrderStore) Get(_ context.Context, id int64) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) PaginatePending(_ context.Context, page, perPage int) (storage.Page[models.Order], error) {
	var pending []models.Order
	for _, o := range f.orders {
		if o.Status == models.OrderPending {
			pending = append(pending, *o)
		}
	}
	return storage.NewPage(pending, page, perPage, len(pending)), nil
}

func (f *fakeOrderStore) Decide(_ context.Context, id int64, status models.OrderStatus, adminID int64, rejectionReason *string) error {
	o, ok := f.orders[id]
	if !ok {
		return storage.ErrNotFound
	}
	if o.Status != models.OrderPending {
		if o.Status == status {
			return nil
		}
		return storage.ErrOrderDecided
	}
	o.Status = status
	o.AdminID.Valid = true
	o.AdminID.Int64 = adminID
	f.reasons[id] = rejectionReason
	return nil
}

type fakeNotifier struct {
	sent map[int64][]string
	err  error
}

func (f *fakeNotifier) NotifyUser(_ context.Context, userID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	if f.sent == nil {
		f.sent = make(map[int64][]string)
	}
	f.sent[userID] = append(f.sent[userID], text)
	return nil
}

func newOrderFixture(t *testing.T, notifier UserNotifier) (*Orders, *fakeOrderStore, int64) {
	t.Helper()
	store := newFakeOrderStore()
	svc := NewOrders(store, NewAudit(&fakeLogStore{}), notifier)
	id, err := svc.Place(context.Background(), 100, 7, 50000, "file-abc")
	require.NoError(t, err)
	return svc, store, id
}

func TestApproveNotifiesBuyer(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, store, id := newOrderFixture(t, notifier)

	order, err := svc.Approve(context.Background(), id, 999)
	require.NoError(t, err)
	assert.Equal(t, models.OrderApproved, order.Status)
	assert.Equal(t, int64(999), store.orders[id].AdminID.Int64)

	require.Len(t, notifier.sent[100], 1)
	assert.Contains(t, notifier.sent[100][0], fmt.Sprintf("#%d", id))
}

func TestRejectStoresPlaceholderReason(t *testing.T) {
	svc, store, id := newOrderFixture(t, &fakeNotifier{})

	order, err := svc.Reject(context.Background(), id, 999)
	require.NoError(t, err)
	assert.Equal(t, models.OrderRejected, order.Status)

	reason := store.reasons[id]
	require.NotNil(t, reason)
	assert.Equal(t, "rejected by admin", *reason)
}

func TestRepeatDecisionIsNoOp(t *testing.T) {
	svc, store, id := newOrderFixture(t, &fakeNotifier{})

	_, err := svc.Approve(context.Background(), id, 1)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), id, 2)
	require.NoError(t, err)
	// The first decision's attribution survives.
	assert.Equal(t, int64(1), store.orders[id].AdminID.Int64)
}

func TestCrossTerminalDecisionFails(t *testing.T) {
	svc, store, id := newOrderFixture(t, &fakeNotifier{})

	_, err := svc.Approve(context.Background(), id, 1)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), id, 2)
	assert.ErrorIs(t, err, storage.ErrOrderDecided)
	assert.Equal(t, models.OrderApproved, store.orders[id].Status)
}

func TestDecideUnknownOrder(t *testing.T) {
	svc, _, _ := newOrderFixture(t, &fakeNotifier{})

	_, err := svc.Approve(context.Background(), 424242, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNotifierFailureDoesNotUndoDecision(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("user blocked the bot")}
	svc, store, id := newOrderFixture(t, notifier)

	order, err := svc.Approve(context.Background(), id, 999)
	require.NoError(t, err)
	assert.Equal(t, models.OrderApproved, order.Status)
	assert.Equal(t, models.OrderApproved, store.orders[id].Status)
}

func TestNilNotifierIsSafe(t *testing.T) {
	svc, _, id := newOrderFixture(t, nil)

	_, err := svc.Reject(context.Background(), id, 999)
	assert.NoError(t, err)
}

func TestPlaceKeepsPriceSnapshot(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrders(store, NewAudit(&fakeLogStore{}), nil)

	id, err := svc.Place(context.Background(), 5, 9, 120000, "shot")
	require.NoError(t, err)
	assert.Equal(t, int64(120000), store.orders[id].Price)
}
