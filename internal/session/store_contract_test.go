package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffee-shop-bot/internal/models"
	"coffee-shop-bot/internal/session"
)

// runStoreContract exercises the Store contract against any backend
func runStoreContract(t *testing.T, store session.Store) {
	ctx := context.Background()

	t.Run("absent cart reads empty", func(t *testing.T) {
		lines, err := store.Cart(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("cart preserves append order", func(t *testing.T) {
		first := models.CartLine{ItemName: "Latte", Quantity: 1, TotalPrice: 4.00}
		second := models.CartLine{ItemName: "Cookie", Quantity: 2, TotalPrice: 3.00}

		require.NoError(t, store.AppendCartLine(ctx, "alice", first))
		require.NoError(t, store.AppendCartLine(ctx, "alice", second))

		lines, err := store.Cart(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, lines, 2)
		assert.Equal(t, "Latte", lines[0].ItemName)
		assert.Equal(t, "Cookie", lines[1].ItemName)
	})

	t.Run("carts are isolated per user", func(t *testing.T) {
		lines, err := store.Cart(ctx, "bob")
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("clear cart resets to empty", func(t *testing.T) {
		require.NoError(t, store.ClearCart(ctx, "alice"))

		lines, err := store.Cart(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, lines)

		// Clearing an absent cart is fine too.
		require.NoError(t, store.ClearCart(ctx, "nobody"))
	})

	t.Run("absent draft reads as zero draft", func(t *testing.T) {
		draft, err := store.Draft(ctx, "nobody")
		require.NoError(t, err)
		assert.True(t, draft.Empty())
	})

	t.Run("draft round trip", func(t *testing.T) {
		saved := models.DraftOrder{
			Category:  models.CategoryCoffee,
			ItemName:  "Latte",
			BasePrice: 4.00,
			Size:      "large",
			Sugar:     "50",
			Ice:       "normal",
			Quantity:  3,
		}
		require.NoError(t, store.SaveDraft(ctx, "alice", saved))

		draft, err := store.Draft(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, saved, draft)

		// Drafts are isolated per user as well.
		other, err := store.Draft(ctx, "bob")
		require.NoError(t, err)
		assert.True(t, other.Empty())
	})

	t.Run("clear draft", func(t *testing.T) {
		require.NoError(t, store.ClearDraft(ctx, "alice"))

		draft, err := store.Draft(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, draft.Empty())

		require.NoError(t, store.ClearDraft(ctx, "nobody"))
	})
}
