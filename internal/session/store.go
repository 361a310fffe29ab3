// Package session holds per-user conversation state: the active cart and
// the draft order being customized. State is partitioned by an opaque user
// id; no cross-user access happens through this interface.
package session

import (
	"context"

	"coffee-shop-bot/internal/models"
)

// Store is the injectable session storage. The in-memory implementation is
// the default; the Redis implementation backs the same contract with an
// external store.
type Store interface {
	// Cart returns the user's cart lines in append order.
	// An absent cart reads as empty.
	Cart(ctx context.Context, userID string) ([]models.CartLine, error)

	// AppendCartLine appends a committed line to the user's cart
	AppendCartLine(ctx context.Context, userID string, line models.CartLine) error

	// ClearCart resets the user's cart to empty. Always succeeds.
	ClearCart(ctx context.Context, userID string) error

	// Draft returns the user's in-progress draft order.
	// An absent draft reads as the zero draft.
	Draft(ctx context.Context, userID string) (models.DraftOrder, error)

	// SaveDraft replaces the user's draft order
	SaveDraft(ctx context.Context, userID string, draft models.DraftOrder) error

	// ClearDraft discards the user's draft order. Always succeeds.
	ClearDraft(ctx context.Context, userID string) error
}
