// Package checkout implements the cart workflow: totals, clearing,
// delivery-method selection and order finalization with the operator
// notification.
package checkout

import (
	"context"
	"errors"
	"time"

	"coffee-shop-bot/internal/logger"
	"coffee-shop-bot/internal/models"
	"coffee-shop-bot/internal/session"
)

var (
	// ErrEmptyCart is returned when checkout is attempted on an empty cart
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidDeliveryMethod is returned for methods other than pickup/delivery
	ErrInvalidDeliveryMethod = errors.New("invalid delivery method")
)

// notifyTimeout bounds the operator notification send. Checkout has
// already succeeded when the notification goes out; a slow or failed
// send must not hold up or fail the customer confirmation.
const notifyTimeout = 5 * time.Second

// Notifier delivers the operator notification. Implementations are
// best-effort; errors are logged by the service and never surfaced.
type Notifier interface {
	NotifyOrder(ctx context.Context, notice *models.OrderNotice) error
}

// Service runs the cart and checkout workflow
type Service struct {
	store    session.Store
	notifier Notifier
	logger   *logger.Logger
	now      func() time.Time
}

// NewService creates a checkout service
func NewService(store session.Store, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

// WithClock overrides the time source, for tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Summary returns the user's cart lines with the grand total.
// An empty cart is a valid summary, not an error.
func (s *Service) Summary(ctx context.Context, userID string) (models.CartSummary, error) {
	lines, err := s.store.Cart(ctx, userID)
	if err != nil {
		return models.CartSummary{}, err
	}

	summary := models.CartSummary{Lines: lines}
	for _, line := range lines {
		summary.GrandTotal += line.TotalPrice
	}

	return summary, nil
}

// ClearCart unconditionally resets the user's cart
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	return s.store.ClearCart(ctx, userID)
}

// Begin checks that checkout can start. The delivery-method selection view
// only makes sense for a non-empty cart.
func (s *Service) Begin(ctx context.Context, userID string) error {
	lines, err := s.store.Cart(ctx, userID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return ErrEmptyCart
	}
	return nil
}

// Finalize converts the cart into an ephemeral Order: validates the
// delivery method, snapshots the lines, notifies the operator best-effort
// and clears the cart. The empty-cart re-check keeps a double-tapped
// finalize from producing a second order or a spurious notification.
func (s *Service) Finalize(ctx context.Context, userID, displayName string, method models.DeliveryMethod) (*models.Order, error) {
	if !method.Valid() {
		return nil, ErrInvalidDeliveryMethod
	}

	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summary.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	placedAt := s.now().UTC()
	order := &models.Order{
		ID:           models.GenerateOrderID(placedAt),
		Method:       method,
		CustomerID:   userID,
		CustomerName: displayName,
		Lines:        summary.Lines,
		GrandTotal:   summary.GrandTotal,
		PlacedAt:     placedAt,
	}

	s.notifyOperator(ctx, order)

	if err := s.store.ClearCart(ctx, userID); err != nil {
		return nil, err
	}

	s.logger.Info("order_finalized", "Order finalized", "", map[string]interface{}{
		"order_id":        order.ID,
		"delivery_method": string(order.Method),
		"line_count":      len(order.Lines),
		"grand_total":     order.GrandTotal,
	})

	return order, nil
}

// notifyOperator sends the operator notice. Fire-and-forget: failure is
// logged and the checkout result is unaffected.
func (s *Service) notifyOperator(ctx context.Context, order *models.Order) {
	if s.notifier == nil {
		return
	}

	notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyOrder(notifyCtx, models.NoticeFromOrder(order)); err != nil {
		s.logger.Error("notification_failed", "Failed to deliver operator notification", "", err, map[string]interface{}{
			"order_id": order.ID,
		})
	}
}
