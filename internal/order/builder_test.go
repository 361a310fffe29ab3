package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-shop-bot/internal/catalog"
	"coffee-shop-bot/internal/models"
	"coffee-shop-bot/internal/order"
	"coffee-shop-bot/internal/session"
)

func newBuilder(t *testing.T) (*order.Builder, *catalog.Catalog, session.Store) {
	t.Helper()
	cat, err := catalog.Embedded()
	require.NoError(t, err)
	store := session.NewMemoryStore()
	return order.NewBuilder(cat, store), cat, store
}

func TestSelectItem_DefaultsAndPricing(t *testing.T) {
	builder, cat, _ := newBuilder(t)
	ctx := context.Background()

	// For every item on the menu, a fresh selection with default options
	// prices at base + medium size delta.
	mediumDelta := cat.OptionDelta(models.OptionSize, "medium")
	for _, category := range cat.Categories() {
		for _, item := range cat.Items(category) {
			userID := "user-" + string(category) + "-" + item.Name

			draft, err := builder.SelectItem(ctx, userID, category, item.Name)
			require.NoError(t, err)

			assert.Equal(t, "medium", draft.Size)
			assert.Equal(t, "50", draft.Sugar)
			assert.Equal(t, "normal", draft.Ice)
			assert.Equal(t, 1, draft.Quantity)
			assert.InDelta(t, item.BasePrice+mediumDelta, order.Total(cat, draft), 1e-9)
		}
	}
}

func TestSelectItem_NotFound(t *testing.T) {
	builder, _, store := newBuilder(t)
	ctx := context.Background()

	_, err := builder.SelectItem(ctx, "alice", models.CategoryCoffee, "Tea")
	assert.True(t, errors.Is(err, catalog.ErrItemNotFound))

	draft, err := store.Draft(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, draft.Empty())
}

func TestSelectItem_CarryOver(t *testing.T) {
	builder, _, _ := newBuilder(t)
	ctx := context.Background()

	_, err := builder.SelectItem(ctx, "alice", models.CategoryCoffee, "Latte")
	require.NoError(t, err)
	_, err = builder.SetOption(ctx, "alice", models.OptionSize, "large")
	require.NoError(t, err)
	_, err = builder.SetOption(ctx, "alice", models.OptionSugar, "0")
	require.NoError(t, err)
	_, err = builder.AdjustQuantity(ctx, "alice", 1)
	require.NoError(t, err)

	// Switching items mid-customization keeps the prior choices.
	draft, err := builder.SelectItem(ctx, "alice", models.CategoryCoffee, "Mocha")
	require.NoError(t, err)
	assert.Equal(t, "Mocha", draft.ItemName)
	assert.Equal(t, 4.50, draft.BasePrice)
	assert.Equal(t, "large", draft.Size)
	assert.Equal(t, "0", draft.Sugar)
	assert.Equal(t, 2, draft.Quantity)
}

func TestSetOption_Invalid(t *testing.T) {
	builder, _, _ := newBuilder(t)
	ctx := context.Background()

	_, err := builder.SelectItem(ctx, "alice", models.CategoryCoffee, "Latte")
	require.NoError(t, err)

	_, err = builder.SetOption(ctx, "alice", models.OptionSize, "venti")
	assert.True(t, errors.Is(err, catalog.ErrInvalidOption))

	draft, err := builder.Draft(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "medium", draft.Size)
}

func TestAdjustQuantity_Floor(t *testing.T) {
	builder, _, _ := newBuilder(t)
	ctx := context.Background()

	_, err := builder.SelectItem(ctx, "alice", models.CategoryCoffee, "Espresso")
	require.NoError(t, err)

	draft, err := builder.AdjustQuantity(ctx, "alice", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, draft.Quantity, "decrement below 1 is a no-op")

	draft, err = builder.AdjustQuantity(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, draft.Quantity)

	draft, err = builder.AdjustQuantity(ctx, "alice", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, draft.Quantity)
}

func TestTotal_LatteScenario(t *testing.T) {
	builder, cat, _ := newBuilder(t)
	ctx := context.Background()

	_, err := builder.SelectItem(ctx, "alice", models.CategoryCoffee, "Latte")
	require.NoError(t, err)
	_, err = builder.SetOption(ctx, "alice", models.OptionSize, "large")
	require.NoError(t, err)
	_, err = builder.AdjustQuantity(ctx, "alice", 1)
	require.NoError(t, err)
	draft, err := builder.AdjustQuantity(ctx, "alice", 1)
	require.NoError(t, err)

	// (4.00 + 1.00) x 3
	assert.InDelta(t, 15.00, order.Total(cat, draft), 1e-9)
}

func TestCommit_EmptyDraft(t *testing.T) {
	builder, _, store := newBuilder(t)
	ctx := context.Background()

	_, err := builder.Commit(ctx, "alice")
	assert.True(t, errors.Is(err, order.ErrNoActiveDraft))

	lines, err := store.Cart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, lines, "failed commit must not touch the cart")
}

func TestCommit_RoundTrip(t *testing.T) {
	builder, cat, store := newBuilder(t)
	ctx := context.Background()

	_, err := builder.SelectItem(ctx, "alice", models.CategoryCoffee, "Latte")
	require.NoError(t, err)
	draft, err := builder.SetOption(ctx, "alice", models.OptionSize, "large")
	require.NoError(t, err)
	wantTotal := order.Total(cat, draft)

	line, err := builder.Commit(ctx, "alice")
	require.NoError(t, err)
	assert.InDelta(t, wantTotal, line.TotalPrice, 1e-9)
	assert.Equal(t, "Large", line.SizeLabel)
	assert.Equal(t, "50% Sugar", line.SugarLabel)
	assert.Equal(t, "Normal Ice", line.IceLabel)

	lines, err := store.Cart(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, line, lines[0])

	// The draft is gone after commit.
	after, err := builder.Draft(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, after.Empty())

	// A double-tapped commit fails cleanly and appends nothing.
	_, err = builder.Commit(ctx, "alice")
	assert.True(t, errors.Is(err, order.ErrNoActiveDraft))
	lines, err = store.Cart(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestCommit_FoodSuppressesBeverageOptions(t *testing.T) {
	builder, cat, _ := newBuilder(t)
	ctx := context.Background()

	_, err := builder.SelectItem(ctx, "alice", models.CategoryFood, "Sandwich")
	require.NoError(t, err)

	// Sugar stays assignable internally on food drafts.
	draft, err := builder.SetOption(ctx, "alice", models.OptionSugar, "100")
	require.NoError(t, err)
	assert.Equal(t, "100", draft.Sugar)
	assert.InDelta(t, 4.50, order.Total(cat, draft), 1e-9, "sugar never affects price")

	line, err := builder.Commit(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "100", line.Sugar, "internal key retained")
	assert.Empty(t, line.SugarLabel, "displayed semantics omit sugar for food")
	assert.Empty(t, line.IceLabel, "displayed semantics omit ice for food")
	assert.Equal(t, "Medium", line.SizeLabel)
}

func TestCommit_TwoItemsKeepSelectionOrder(t *testing.T) {
	builder, _, store := newBuilder(t)
	ctx := context.Background()

	_, err := builder.SelectItem(ctx, "alice", models.CategoryCoffee, "Espresso")
	require.NoError(t, err)
	_, err = builder.Commit(ctx, "alice")
	require.NoError(t, err)

	_, err = builder.SelectItem(ctx, "alice", models.CategoryFood, "Cookie")
	require.NoError(t, err)
	_, err = builder.Commit(ctx, "alice")
	require.NoError(t, err)

	lines, err := store.Cart(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Espresso", lines[0].ItemName)
	assert.Equal(t, "Cookie", lines[1].ItemName)
}

func TestDiscard(t *testing.T) {
	builder, _, store := newBuilder(t)
	ctx := context.Background()

	// Discarding without a draft is a no-op.
	require.NoError(t, builder.Discard(ctx, "alice"))

	_, err := builder.SelectItem(ctx, "alice", models.CategoryCoffee, "Latte")
	require.NoError(t, err)
	require.NoError(t, builder.Discard(ctx, "alice"))

	draft, err := builder.Draft(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, draft.Empty())

	lines, err := store.Cart(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestApplyDefaults(t *testing.T) {
	cat, err := catalog.Embedded()
	require.NoError(t, err)

	draft := order.ApplyDefaults(cat, models.DraftOrder{})
	assert.Equal(t, "medium", draft.Size)
	assert.Equal(t, "50", draft.Sugar)
	assert.Equal(t, "normal", draft.Ice)
	assert.Equal(t, 1, draft.Quantity)

	// Already-set fields stay untouched.
	draft = order.ApplyDefaults(cat, models.DraftOrder{Size: "large", Quantity: 3})
	assert.Equal(t, "large", draft.Size)
	assert.Equal(t, 3, draft.Quantity)
}
