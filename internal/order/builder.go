// Package order implements the draft-order state machine: selecting an
// item, adjusting its options and quantity, and committing the priced
// snapshot into the cart.
package order

import (
	"context"
	"errors"
	"fmt"

	"coffee-shop-bot/internal/catalog"
	"coffee-shop-bot/internal/models"
	"coffee-shop-bot/internal/session"
)

// ErrNoActiveDraft is returned when commit is attempted without a draft
var ErrNoActiveDraft = errors.New("no active draft order")

// Builder governs the customization lifecycle of a single draft order
type Builder struct {
	catalog *catalog.Catalog
	store   session.Store
}

// NewBuilder creates a draft-order builder
func NewBuilder(cat *catalog.Catalog, store session.Store) *Builder {
	return &Builder{
		catalog: cat,
		store:   store,
	}
}

// ApplyDefaults returns the draft with unset option fields filled in from
// the catalog defaults. Pure; the stored draft is not modified.
func ApplyDefaults(cat *catalog.Catalog, draft models.DraftOrder) models.DraftOrder {
	if draft.Size == "" {
		draft.Size = cat.DefaultOption(models.OptionSize).Key
	}
	if draft.Sugar == "" {
		draft.Sugar = cat.DefaultOption(models.OptionSugar).Key
	}
	if draft.Ice == "" {
		draft.Ice = cat.DefaultOption(models.OptionIce).Key
	}
	if draft.Quantity < 1 {
		draft.Quantity = 1
	}
	return draft
}

// Total computes the draft price: (base + size delta) x quantity.
// Sugar and ice carry zero deltas on this menu but stay part of the model.
func Total(cat *catalog.Catalog, draft models.DraftOrder) float64 {
	return (draft.BasePrice + cat.OptionDelta(models.OptionSize, draft.Size)) * float64(draft.Quantity)
}

// Draft returns the user's current draft with defaults applied
func (b *Builder) Draft(ctx context.Context, userID string) (models.DraftOrder, error) {
	draft, err := b.store.Draft(ctx, userID)
	if err != nil {
		return models.DraftOrder{}, err
	}
	return ApplyDefaults(b.catalog, draft), nil
}

// SelectItem starts or retargets the draft at a catalog item. Option
// choices from an earlier draft of the same user carry over so switching
// items mid-customization keeps prior selections.
func (b *Builder) SelectItem(ctx context.Context, userID string, category models.Category, name string) (models.DraftOrder, error) {
	item, err := b.catalog.Item(category, name)
	if err != nil {
		return models.DraftOrder{}, err
	}

	draft, err := b.store.Draft(ctx, userID)
	if err != nil {
		return models.DraftOrder{}, err
	}

	draft.Category = item.Category
	draft.ItemName = item.Name
	draft.BasePrice = item.BasePrice
	draft.Glyph = item.Glyph
	draft = ApplyDefaults(b.catalog, draft)

	if err := b.store.SaveDraft(ctx, userID, draft); err != nil {
		return models.DraftOrder{}, err
	}

	return draft, nil
}

// SetOption sets one option field of the draft. The key must belong to the
// option set. Sugar and ice stay assignable on food drafts; they are never
// priced and the views never surface them.
func (b *Builder) SetOption(ctx context.Context, userID string, kind models.OptionKind, key string) (models.DraftOrder, error) {
	entry, err := b.catalog.Option(kind, key)
	if err != nil {
		return models.DraftOrder{}, err
	}

	draft, err := b.store.Draft(ctx, userID)
	if err != nil {
		return models.DraftOrder{}, err
	}
	draft = ApplyDefaults(b.catalog, draft)

	switch kind {
	case models.OptionSize:
		draft.Size = entry.Key
	case models.OptionSugar:
		draft.Sugar = entry.Key
	case models.OptionIce:
		draft.Ice = entry.Key
	default:
		return models.DraftOrder{}, fmt.Errorf("%w: %s", catalog.ErrInvalidOption, kind)
	}

	if err := b.store.SaveDraft(ctx, userID, draft); err != nil {
		return models.DraftOrder{}, err
	}

	return draft, nil
}

// AdjustQuantity changes the draft quantity by delta, clamping at 1.
// Decrementing from 1 is a no-op; there is no upper bound.
func (b *Builder) AdjustQuantity(ctx context.Context, userID string, delta int) (models.DraftOrder, error) {
	draft, err := b.store.Draft(ctx, userID)
	if err != nil {
		return models.DraftOrder{}, err
	}
	draft = ApplyDefaults(b.catalog, draft)

	if draft.Quantity+delta >= 1 {
		draft.Quantity += delta
	}

	if err := b.store.SaveDraft(ctx, userID, draft); err != nil {
		return models.DraftOrder{}, err
	}

	return draft, nil
}

// Commit snapshots the draft with its computed total into the cart and
// clears the draft. A commit without an active draft fails and leaves the
// cart untouched, which also makes a double-tapped commit safe.
func (b *Builder) Commit(ctx context.Context, userID string) (models.CartLine, error) {
	draft, err := b.store.Draft(ctx, userID)
	if err != nil {
		return models.CartLine{}, err
	}
	if draft.Empty() {
		return models.CartLine{}, ErrNoActiveDraft
	}
	draft = ApplyDefaults(b.catalog, draft)

	line := models.CartLine{
		Category:   draft.Category,
		ItemName:   draft.ItemName,
		Glyph:      draft.Glyph,
		Size:       draft.Size,
		Sugar:      draft.Sugar,
		Ice:        draft.Ice,
		SizeLabel:  b.catalog.OptionLabel(models.OptionSize, draft.Size),
		Quantity:   draft.Quantity,
		TotalPrice: Total(b.catalog, draft),
	}
	if draft.Category.HasBeverageOptions() {
		line.SugarLabel = b.catalog.OptionLabel(models.OptionSugar, draft.Sugar)
		line.IceLabel = b.catalog.OptionLabel(models.OptionIce, draft.Ice)
	}

	if err := b.store.AppendCartLine(ctx, userID, line); err != nil {
		return models.CartLine{}, err
	}
	if err := b.store.ClearDraft(ctx, userID); err != nil {
		return models.CartLine{}, err
	}

	return line, nil
}

// Discard drops the draft without touching the cart. A missing draft is
// not an error.
func (b *Builder) Discard(ctx context.Context, userID string) error {
	return b.store.ClearDraft(ctx, userID)
}
