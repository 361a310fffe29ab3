// Package bot is the transport-neutral core boundary: it decodes action
// tokens, routes them through the catalog, order builder and checkout
// workflow, and renders the next view. All domain errors are converted to
// plain-language views here; nothing that happens for one user can take
// the process down for the others.
package bot

import (
	"context"
	"errors"
	"sync"

	"coffee-shop-bot/internal/catalog"
	"coffee-shop-bot/internal/checkout"
	"coffee-shop-bot/internal/logger"
	"coffee-shop-bot/internal/models"
	"coffee-shop-bot/internal/order"
)

// Dispatcher routes decoded actions to the core components
type Dispatcher struct {
	catalog       *catalog.Catalog
	builder       *order.Builder
	checkout      *checkout.Service
	logger        *logger.Logger
	adminUsername string
	locks         sync.Map // user id -> *sync.Mutex
}

// NewDispatcher creates the action dispatcher
func NewDispatcher(cat *catalog.Catalog, builder *order.Builder, co *checkout.Service, log *logger.Logger, adminUsername string) *Dispatcher {
	return &Dispatcher{
		catalog:       cat,
		builder:       builder,
		checkout:      co,
		logger:        log,
		adminUsername: adminUsername,
	}
}

// userLock serializes actions per user identity. State is fully
// partitioned by user, so there is no cross-user contention to manage.
func (d *Dispatcher) userLock(userID string) *sync.Mutex {
	lock, _ := d.locks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Dispatch handles one incoming action event and returns the view to
// render back to the user
func (d *Dispatcher) Dispatch(ctx context.Context, event models.ActionEvent) models.View {
	requestID := logger.GenerateRequestID()

	action, err := ParseAction(event.Token)
	if err != nil {
		d.logger.Warn("unknown_action", "Received unknown action token", requestID, map[string]interface{}{
			"user_id": event.UserID,
			"token":   event.Token,
		})
		return UnknownActionView()
	}

	lock := d.userLock(event.UserID)
	lock.Lock()
	defer lock.Unlock()

	d.logger.Debug("action_received", "Dispatching user action", requestID, map[string]interface{}{
		"user_id": event.UserID,
		"token":   event.Token,
	})

	view, err := d.handle(ctx, event, action)
	if err != nil {
		return d.errorView(event, action, err, requestID)
	}
	return view
}

func (d *Dispatcher) handle(ctx context.Context, event models.ActionEvent, action Action) (models.View, error) {
	switch action.Kind {
	case ActionMenuHome:
		return MainMenu(d.catalog), nil

	case ActionHelp:
		return HelpView(d.adminUsername), nil

	case ActionCategorySelect:
		return CategoryView(d.catalog, action.Category), nil

	case ActionItemSelect:
		draft, err := d.builder.SelectItem(ctx, event.UserID, action.Category, action.Item)
		if err != nil {
			return models.View{}, err
		}
		return DraftView(d.catalog, draft, order.Total(d.catalog, draft)), nil

	case ActionOptionEdit:
		draft, err := d.builder.Draft(ctx, event.UserID)
		if err != nil {
			return models.View{}, err
		}
		if draft.Empty() {
			return MainMenu(d.catalog), nil
		}
		return OptionEditorView(d.catalog, action.Option, d.currentOption(draft, action.Option)), nil

	case ActionOptionSet:
		draft, err := d.builder.SetOption(ctx, event.UserID, action.Option, action.Key)
		if err != nil {
			return models.View{}, err
		}
		return DraftView(d.catalog, draft, order.Total(d.catalog, draft)), nil

	case ActionQuantityEdit:
		draft, err := d.builder.Draft(ctx, event.UserID)
		if err != nil {
			return models.View{}, err
		}
		if draft.Empty() {
			return MainMenu(d.catalog), nil
		}
		return QuantityEditorView(draft.Quantity), nil

	case ActionQuantityAdjust:
		draft, err := d.builder.AdjustQuantity(ctx, event.UserID, action.Delta)
		if err != nil {
			return models.View{}, err
		}
		return QuantityEditorView(draft.Quantity), nil

	case ActionDraftView:
		draft, err := d.builder.Draft(ctx, event.UserID)
		if err != nil {
			return models.View{}, err
		}
		if draft.Empty() {
			return MainMenu(d.catalog), nil
		}
		return DraftView(d.catalog, draft, order.Total(d.catalog, draft)), nil

	case ActionDraftCommit:
		line, err := d.builder.Commit(ctx, event.UserID)
		if err != nil {
			return models.View{}, err
		}
		// Back to the category listing the item came from, as a fresh start.
		return CategoryView(d.catalog, line.Category), nil

	case ActionDraftDiscard:
		if err := d.builder.Discard(ctx, event.UserID); err != nil {
			return models.View{}, err
		}
		return MainMenu(d.catalog), nil

	case ActionCartView:
		summary, err := d.checkout.Summary(ctx, event.UserID)
		if err != nil {
			return models.View{}, err
		}
		return CartView(summary), nil

	case ActionCartClear:
		if err := d.checkout.ClearCart(ctx, event.UserID); err != nil {
			return models.View{}, err
		}
		return CartView(models.CartSummary{}), nil

	case ActionCheckoutBegin:
		if err := d.checkout.Begin(ctx, event.UserID); err != nil {
			return models.View{}, err
		}
		return DeliveryMethodView(), nil

	case ActionCheckoutFinalize:
		finalized, err := d.checkout.Finalize(ctx, event.UserID, event.DisplayName, action.Method)
		if err != nil {
			return models.View{}, err
		}
		return ConfirmationView(finalized), nil
	}

	return UnknownActionView(), nil
}

func (d *Dispatcher) currentOption(draft models.DraftOrder, kind models.OptionKind) string {
	switch kind {
	case models.OptionSugar:
		return draft.Sugar
	case models.OptionIce:
		return draft.Ice
	default:
		return draft.Size
	}
}

// errorView converts a domain error into the user-visible view. Every
// error is recovered locally; none are fatal.
func (d *Dispatcher) errorView(event models.ActionEvent, action Action, err error, requestID string) models.View {
	fields := map[string]interface{}{
		"user_id": event.UserID,
		"token":   event.Token,
	}

	switch {
	case errors.Is(err, catalog.ErrItemNotFound):
		d.logger.Warn("item_not_found", "User selected an unknown item", requestID, fields)
		return ErrorView("❌ That item is not on the menu.")

	case errors.Is(err, catalog.ErrInvalidOption):
		d.logger.Warn("invalid_option", "User picked an unknown option", requestID, fields)
		return ErrorView("❌ That option is not available.")

	case errors.Is(err, order.ErrNoActiveDraft):
		d.logger.Warn("no_active_draft", "Commit without an active draft", requestID, fields)
		return ErrorView("❌ Pick an item first, then add it to your cart.")

	case errors.Is(err, checkout.ErrEmptyCart):
		d.logger.Warn("empty_cart", "Checkout attempted with an empty cart", requestID, fields)
		return ErrorView("🛒 Your cart is empty!")

	case errors.Is(err, checkout.ErrInvalidDeliveryMethod):
		d.logger.Warn("invalid_delivery_method", "Unknown delivery method", requestID, fields)
		return ErrorView("❌ Please choose pickup or delivery.")
	}

	d.logger.Error("action_failed", "Failed to handle user action", requestID, err, fields)
	return ErrorView("⚠️ Something went wrong. Please try again.")
}
