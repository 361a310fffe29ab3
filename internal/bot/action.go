package bot

import (
	"errors"
	"fmt"
	"strings"

	"coffee-shop-bot/internal/models"
)

// ErrUnknownAction is returned for tokens outside the action grammar
var ErrUnknownAction = errors.New("unknown action")

// ActionKind enumerates the closed set of user actions
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionMenuHome
	ActionCategorySelect
	ActionItemSelect
	ActionOptionEdit
	ActionOptionSet
	ActionQuantityEdit
	ActionQuantityAdjust
	ActionDraftView
	ActionDraftCommit
	ActionDraftDiscard
	ActionCartView
	ActionCartClear
	ActionCheckoutBegin
	ActionCheckoutFinalize
	ActionHelp
)

// Action is one decoded user action. Tokens are decoded exactly once at
// the transport boundary; the dispatcher switches on Kind and never looks
// at the raw token again.
type Action struct {
	Kind     ActionKind
	Category models.Category
	Item     string
	Option   models.OptionKind
	Key      string
	Delta    int
	Method   models.DeliveryMethod
}

// Token grammar: a verb optionally followed by colon-separated arguments.
// Item names may contain spaces but never colons.
const (
	tokMenuHome         = "menu_home"
	tokCategorySelect   = "category_select"
	tokItemSelect       = "item_select"
	tokOptionEdit       = "option_edit"
	tokOptionSet        = "option_set"
	tokQuantityEdit     = "quantity_edit"
	tokQuantityAdjust   = "quantity_adjust"
	tokDraftView        = "draft_view"
	tokDraftCommit      = "draft_commit"
	tokDraftDiscard     = "draft_discard"
	tokCartView         = "cart_view"
	tokCartClear        = "cart_clear"
	tokCheckoutBegin    = "checkout_begin"
	tokCheckoutFinalize = "checkout_finalize"
	tokHelp             = "help"
)

// ParseAction decodes an action token into its tagged variant.
// Malformed or unrecognized tokens fail with ErrUnknownAction; the
// delivery method and option keys are validated downstream so their
// failures surface as the distinct domain errors.
func ParseAction(token string) (Action, error) {
	parts := strings.Split(token, ":")
	verb, args := parts[0], parts[1:]

	fail := func() (Action, error) {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, token)
	}

	switch verb {
	case tokMenuHome:
		if len(args) != 0 {
			return fail()
		}
		return Action{Kind: ActionMenuHome}, nil

	case tokCategorySelect:
		if len(args) != 1 || !models.Category(args[0]).Valid() {
			return fail()
		}
		return Action{Kind: ActionCategorySelect, Category: models.Category(args[0])}, nil

	case tokItemSelect:
		if len(args) != 2 || !models.Category(args[0]).Valid() || args[1] == "" {
			return fail()
		}
		return Action{Kind: ActionItemSelect, Category: models.Category(args[0]), Item: args[1]}, nil

	case tokOptionEdit:
		if len(args) != 1 || !models.OptionKind(args[0]).Valid() {
			return fail()
		}
		return Action{Kind: ActionOptionEdit, Option: models.OptionKind(args[0])}, nil

	case tokOptionSet:
		if len(args) != 2 || !models.OptionKind(args[0]).Valid() || args[1] == "" {
			return fail()
		}
		return Action{Kind: ActionOptionSet, Option: models.OptionKind(args[0]), Key: args[1]}, nil

	case tokQuantityEdit:
		if len(args) != 0 {
			return fail()
		}
		return Action{Kind: ActionQuantityEdit}, nil

	case tokQuantityAdjust:
		if len(args) != 1 {
			return fail()
		}
		switch args[0] {
		case "inc":
			return Action{Kind: ActionQuantityAdjust, Delta: 1}, nil
		case "dec":
			return Action{Kind: ActionQuantityAdjust, Delta: -1}, nil
		}
		return fail()

	case tokDraftView:
		if len(args) != 0 {
			return fail()
		}
		return Action{Kind: ActionDraftView}, nil

	case tokDraftCommit:
		if len(args) != 0 {
			return fail()
		}
		return Action{Kind: ActionDraftCommit}, nil

	case tokDraftDiscard:
		if len(args) != 0 {
			return fail()
		}
		return Action{Kind: ActionDraftDiscard}, nil

	case tokCartView:
		if len(args) != 0 {
			return fail()
		}
		return Action{Kind: ActionCartView}, nil

	case tokCartClear:
		if len(args) != 0 {
			return fail()
		}
		return Action{Kind: ActionCartClear}, nil

	case tokCheckoutBegin:
		if len(args) != 0 {
			return fail()
		}
		return Action{Kind: ActionCheckoutBegin}, nil

	case tokCheckoutFinalize:
		// Method validated by checkout so a bad value answers with the
		// invalid-delivery-method view, not unknown action.
		if len(args) != 1 || args[0] == "" {
			return fail()
		}
		return Action{Kind: ActionCheckoutFinalize, Method: models.DeliveryMethod(args[0])}, nil

	case tokHelp:
		if len(args) != 0 {
			return fail()
		}
		return Action{Kind: ActionHelp}, nil
	}

	return fail()
}

// Token builders used by the views.

func categoryToken(category models.Category) string {
	return fmt.Sprintf("%s:%s", tokCategorySelect, category)
}

func itemToken(category models.Category, name string) string {
	return fmt.Sprintf("%s:%s:%s", tokItemSelect, category, name)
}

func optionEditToken(kind models.OptionKind) string {
	return fmt.Sprintf("%s:%s", tokOptionEdit, kind)
}

func optionSetToken(kind models.OptionKind, key string) string {
	return fmt.Sprintf("%s:%s:%s", tokOptionSet, kind, key)
}

func quantityAdjustToken(op string) string {
	return fmt.Sprintf("%s:%s", tokQuantityAdjust, op)
}

func finalizeToken(method models.DeliveryMethod) string {
	return fmt.Sprintf("%s:%s", tokCheckoutFinalize, method)
}
