package service

import (
	"context"
	"fmt"
	"log/slog"

	"bazaarbot/core/logger"
	"bazaarbot/internal/models"
	"bazaarbot/internal/storage"
)

// OrdersStore is the order slice of the persistence gateway.
type OrdersStore interface {
	Create(ctx context.Context, userID, productID, price int64, screenshotFileID string) (int64, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Order, error)
	PaginatePending(ctx context.Context, page, perPage int) (storage.Page[models.Order], error)
	Decide(ctx context.Context, id int64, status models.OrderStatus, adminID int64, rejectionReason *string) error
}

// UserNotifier delivers a direct message to a user. Delivery is best-effort
// for order decisions: a failed notification never rolls the decision back.
type UserNotifier interface {
	NotifyUser(ctx context.Context, userID int64, text string) error
}

// The reviewed interaction path has no free-text capture for a rejection
// reason, so a fixed placeholder is stored.
const defaultRejectionReason = "rejected by admin"

// Orders owns the purchase order lifecycle.
type Orders struct {
	store    OrdersStore
	audit    *Audit
	notifier UserNotifier
}

// NewOrders builds the order service. notifier may be nil in tests.
func NewOrders(store OrdersStore, audit *Audit, notifier UserNotifier) *Orders {
	return &Orders{store: store, audit: audit, notifier: notifier}
}

// Place creates a pending order from a payment screenshot, carrying the
// price snapshot captured when the user pressed buy.
func (s *Orders) Place(ctx context.Context, userID, productID, price int64, screenshotFileID string) (int64, error) {
	id, err := s.store.Create(ctx, userID, productID, price, screenshotFileID)
	if err != nil {
		logger.Error(ctx, "service.orders", "order.place.fail",
			slog.Int64("user_id", userID),
			slog.Int64("product_id", productID),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("place order: %w", err)
	}
	logger.Info(ctx, "service.orders", "order.placed",
		slog.Int64("order_id", id),
		slog.Int64("user_id", userID),
		slog.Int64("price", price),
	)
	_ = s.audit.Record(ctx, userID, "order_created", fmt.Sprintf("order #%d for product %d created pending approval", id, productID))
	return id, nil
}

// Order returns one order by id.
func (s *Orders) Order(ctx context.Context, id int64) (*models.Order, error) {
	return s.store.Get(ctx, id)
}

// ListByUser returns a user's order history.
func (s *Orders) ListByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.store.ListByUser(ctx, userID)
}

// PaginatePending returns one page of the admin review queue.
func (s *Orders) PaginatePending(ctx context.Context, page, perPage int) (storage.Page[models.Order], error) {
	return s.store.PaginatePending(ctx, page, perPage)
}

// Approve moves an order to approved and notifies the buyer best-effort.
func (s *Orders) Approve(ctx context.Context, orderID, adminID int64) (*models.Order, error) {
	if err := s.store.Decide(ctx, orderID, models.OrderApproved, adminID, nil); err != nil {
		return nil, fmt.Errorf("approve order %d: %w", orderID, err)
	}
	_ = s.audit.Record(ctx, adminID, "order_status_updated", fmt.Sprintf("order #%d -> approved", orderID))

	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("approve order %d: %w", orderID, err)
	}
	s.notify(ctx, order.UserID, fmt.Sprintf("✅ سفارش #%d شما تایید شد و در صف ارسال است.", orderID))
	return order, nil
}

// Reject moves an order to rejected with the placeholder reason and
// notifies the buyer best-effort.
func (s *Orders) Reject(ctx context.Context, orderID, adminID int64) (*models.Order, error) {
	reason := defaultRejectionReason
	if err := s.store.Decide(ctx, orderID, models.OrderRejected, adminID, &reason); err != nil {
		return nil, fmt.Errorf("reject order %d: %w", orderID, err)
	}
	_ = s.audit.Record(ctx, adminID, "order_status_updated", fmt.Sprintf("order #%d -> rejected", orderID))

	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("reject order %d: %w", orderID, err)
	}
	s.notify(ctx, order.UserID, fmt.Sprintf("❌ سفارش #%d شما رد شد. در صورت مشکل با پشتیبانی تماس بگیرید.", orderID))
	return order, nil
}

func (s *Orders) notify(ctx context.Context, userID int64, text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyUser(ctx, userID, text); err != nil {
		logger.Warn(ctx, "service.orders", "order.notify.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
	}
}
