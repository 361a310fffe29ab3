package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-shop-bot/internal/checkout"
	"coffee-shop-bot/internal/logger"
	"coffee-shop-bot/internal/models"
	"coffee-shop-bot/internal/session"
)

// captureNotifier records every notice it is handed
type captureNotifier struct {
	notices []*models.OrderNotice
	err     error
}

func (n *captureNotifier) NotifyOrder(_ context.Context, notice *models.OrderNotice) error {
	if n.err != nil {
		return n.err
	}
	n.notices = append(n.notices, notice)
	return nil
}

var fixedTime = time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)

func newService(t *testing.T) (*checkout.Service, session.Store, *captureNotifier) {
	t.Helper()
	store := session.NewMemoryStore()
	notifier := &captureNotifier{}
	svc := checkout.NewService(store, notifier, logger.New("test")).
		WithClock(func() time.Time { return fixedTime })
	return svc, store, notifier
}

func seedCart(t *testing.T, store session.Store, userID string) []models.CartLine {
	t.Helper()
	lines := []models.CartLine{
		{Category: models.CategoryCoffee, ItemName: "Latte", Glyph: "🥛", Size: "large",
			SizeLabel: "Large", SugarLabel: "50% Sugar", IceLabel: "Normal Ice", Quantity: 3, TotalPrice: 15.00},
		{Category: models.CategoryFood, ItemName: "Croissant", Glyph: "🥐", Size: "medium",
			SizeLabel: "Medium", Quantity: 1, TotalPrice: 2.75},
	}
	for _, line := range lines {
		require.NoError(t, store.AppendCartLine(context.Background(), userID, line))
	}
	return lines
}

func TestSummary(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	// Empty cart is a valid summary.
	summary, err := svc.Summary(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, summary.Lines)
	assert.Zero(t, summary.GrandTotal)

	seedCart(t, store, "alice")

	summary, err = svc.Summary(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, summary.Lines, 2)
	assert.InDelta(t, 17.75, summary.GrandTotal, 1e-9)
}

func TestBegin(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	err := svc.Begin(ctx, "alice")
	assert.True(t, errors.Is(err, checkout.ErrEmptyCart))

	seedCart(t, store, "alice")
	assert.NoError(t, svc.Begin(ctx, "alice"))
}

func TestFinalize(t *testing.T) {
	svc, store, notifier := newService(t)
	ctx := context.Background()
	seedCart(t, store, "alice")

	finalized, err := svc.Finalize(ctx, "alice", "Alice A", models.DeliveryPickup)
	require.NoError(t, err)

	assert.Equal(t, "ORD20250601123045", finalized.ID)
	assert.Equal(t, models.DeliveryPickup, finalized.Method)
	assert.Equal(t, "Alice A", finalized.CustomerName)
	assert.Equal(t, fixedTime, finalized.PlacedAt)
	require.Len(t, finalized.Lines, 2)
	assert.InDelta(t, 17.75, finalized.GrandTotal, 1e-9)

	// Exactly one operator notice carrying both lines and the total.
	require.Len(t, notifier.notices, 1)
	notice := notifier.notices[0]
	assert.Equal(t, finalized.ID, notice.OrderID)
	assert.Len(t, notice.Lines, 2)
	assert.InDelta(t, 17.75, notice.GrandTotal, 1e-9)

	// Cart is reset after checkout.
	lines, err := store.Cart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Finalizing again hits the empty-cart guard, sends nothing.
	_, err = svc.Finalize(ctx, "alice", "Alice A", models.DeliveryPickup)
	assert.True(t, errors.Is(err, checkout.ErrEmptyCart))
	assert.Len(t, notifier.notices, 1)
}

func TestFinalize_EmptyCart(t *testing.T) {
	svc, _, notifier := newService(t)

	_, err := svc.Finalize(context.Background(), "alice", "Alice A", models.DeliveryDelivery)
	assert.True(t, errors.Is(err, checkout.ErrEmptyCart))
	assert.Empty(t, notifier.notices, "no spurious notification on empty cart")
}

func TestFinalize_InvalidDeliveryMethod(t *testing.T) {
	svc, store, notifier := newService(t)
	ctx := context.Background()
	seedCart(t, store, "alice")

	_, err := svc.Finalize(ctx, "alice", "Alice A", models.DeliveryMethod("teleport"))
	assert.True(t, errors.Is(err, checkout.ErrInvalidDeliveryMethod))
	assert.Empty(t, notifier.notices)

	// Cart untouched by the failed finalize.
	lines, err := store.Cart(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}

func TestFinalize_NotifierFailureIsNonFatal(t *testing.T) {
	svc, store, notifier := newService(t)
	ctx := context.Background()
	seedCart(t, store, "alice")
	notifier.err = errors.New("broker unavailable")

	finalized, err := svc.Finalize(ctx, "alice", "Alice A", models.DeliveryDelivery)
	require.NoError(t, err, "notification failure must not fail checkout")
	assert.NotNil(t, finalized)

	// Cart is still cleared: checkout succeeded from the user's view.
	lines, err := store.Cart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestClearCart(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()
	seedCart(t, store, "alice")

	require.NoError(t, svc.ClearCart(ctx, "alice"))

	summary, err := svc.Summary(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, summary.Lines)

	// Clearing an already-empty cart succeeds too.
	require.NoError(t, svc.ClearCart(ctx, "alice"))
}
