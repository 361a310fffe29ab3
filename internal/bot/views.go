package bot

import (
	"fmt"
	"strings"

	"coffee-shop-bot/internal/catalog"
	"coffee-shop-bot/internal/models"
)

// View builders. Each returns a render instruction; the transport decides
// how text and choices appear on the wire.

var categoryLabels = map[models.Category]string{
	models.CategoryCoffee: "☕ Coffee",
	models.CategoryFood:   "🍽️ Food",
	models.CategoryDrinks: "🥤 Drinks",
}

var optionTitles = map[models.OptionKind]string{
	models.OptionSize:  "📏 Size",
	models.OptionSugar: "🍬 Sugar",
	models.OptionIce:   "🧊 Ice",
}

func methodLabel(method models.DeliveryMethod) string {
	if method == models.DeliveryDelivery {
		return "🚚 Delivery"
	}
	return "🏪 Pickup"
}

// MainMenu is the landing view with the category listing
func MainMenu(cat *catalog.Catalog) models.View {
	view := models.View{
		Text: "☕ Welcome to our coffee shop!\n\nPick a category below:",
	}
	for _, category := range cat.Categories() {
		view.Choices = append(view.Choices, models.Choice{
			Label:  categoryLabels[category],
			Action: categoryToken(category),
		})
	}
	view.Choices = append(view.Choices, models.Choice{Label: "🛒 View Cart", Action: tokCartView})
	return view
}

// HelpView shows the help text with the admin contact when configured
func HelpView(adminUsername string) models.View {
	text := "💬 Need help?"
	if adminUsername != "" {
		text = fmt.Sprintf("💬 Need help? Contact @%s", adminUsername)
	}
	return models.View{
		Text:    text,
		Choices: []models.Choice{{Label: "🏠 Back to Menu", Action: tokMenuHome}},
	}
}

// CategoryView lists the items of one category with their prices
func CategoryView(cat *catalog.Catalog, category models.Category) models.View {
	items := cat.Items(category)
	if len(items) == 0 {
		return models.View{
			Text:    "❌ Nothing on the menu here.",
			Choices: []models.Choice{{Label: "⬅️ Back", Action: tokMenuHome}},
		}
	}

	view := models.View{
		Text: fmt.Sprintf("📋 %s menu:", categoryLabels[category]),
	}
	for _, item := range items {
		view.Choices = append(view.Choices, models.Choice{
			Label:  fmt.Sprintf("%s %s - $%.2f", item.Glyph, item.Name, item.BasePrice),
			Action: itemToken(category, item.Name),
		})
	}
	view.Choices = append(view.Choices, models.Choice{Label: "⬅️ Back", Action: tokMenuHome})
	return view
}

// DraftView is the customization screen: the draft summary with its
// running total and the editing controls. Sugar and ice rows and buttons
// are suppressed for food.
func DraftView(cat *catalog.Catalog, draft models.DraftOrder, total float64) models.View {
	var text strings.Builder
	fmt.Fprintf(&text, "%s %s\n", draft.Glyph, draft.ItemName)
	fmt.Fprintf(&text, "📏 Size: %s\n", cat.OptionLabel(models.OptionSize, draft.Size))
	if draft.Category.HasBeverageOptions() {
		fmt.Fprintf(&text, "🍬 Sugar: %s\n", cat.OptionLabel(models.OptionSugar, draft.Sugar))
		fmt.Fprintf(&text, "🧊 Ice: %s\n", cat.OptionLabel(models.OptionIce, draft.Ice))
	}
	fmt.Fprintf(&text, "🔢 Quantity: %d\n\n💰 Total: $%.2f", draft.Quantity, total)

	view := models.View{Text: text.String()}
	view.Choices = append(view.Choices, models.Choice{Label: "📏 Size", Action: optionEditToken(models.OptionSize)})
	if draft.Category.HasBeverageOptions() {
		view.Choices = append(view.Choices,
			models.Choice{Label: "🍬 Sugar", Action: optionEditToken(models.OptionSugar)},
			models.Choice{Label: "🧊 Ice", Action: optionEditToken(models.OptionIce)},
		)
	}
	view.Choices = append(view.Choices,
		models.Choice{Label: "🔢 Quantity", Action: tokQuantityEdit},
		models.Choice{Label: "✅ Add to Cart", Action: tokDraftCommit},
		models.Choice{Label: "❌ Cancel", Action: tokDraftDiscard},
		models.Choice{Label: "⬅️ Back", Action: categoryToken(draft.Category)},
	)
	return view
}

// OptionEditorView lists the choices of one option set, current pick first
func OptionEditorView(cat *catalog.Catalog, kind models.OptionKind, current string) models.View {
	view := models.View{
		Text: fmt.Sprintf("%s — pick one:", optionTitles[kind]),
	}
	view.Choices = append(view.Choices, models.Choice{
		Label:  fmt.Sprintf("✅ Selected: %s", cat.OptionLabel(kind, current)),
		Action: tokDraftView,
	})
	for _, entry := range cat.Options(kind) {
		if entry.Key == current {
			continue
		}
		label := entry.Label
		if entry.PriceDelta != 0 {
			label = fmt.Sprintf("%s %+.2f", entry.Label, entry.PriceDelta)
		}
		view.Choices = append(view.Choices, models.Choice{
			Label:  label,
			Action: optionSetToken(kind, entry.Key),
		})
	}
	view.Choices = append(view.Choices, models.Choice{Label: "⬅️ Back", Action: tokDraftView})
	return view
}

// QuantityEditorView is the live minus/count/plus editor
func QuantityEditorView(quantity int) models.View {
	return models.View{
		Text: fmt.Sprintf("🔢 Quantity: %d", quantity),
		Choices: []models.Choice{
			{Label: "➖", Action: quantityAdjustToken("dec")},
			{Label: fmt.Sprintf("%d", quantity), Action: tokQuantityEdit},
			{Label: "➕", Action: quantityAdjustToken("inc")},
			{Label: "⬅️ Back", Action: tokDraftView},
		},
	}
}

// CartView renders the cart with its grand total; an empty cart is a
// distinct view, not an error
func CartView(summary models.CartSummary) models.View {
	if len(summary.Lines) == 0 {
		return models.View{
			Text:    "🛒 Your cart is empty!",
			Choices: []models.Choice{{Label: "⬅️ Back", Action: tokMenuHome}},
		}
	}

	var text strings.Builder
	text.WriteString("🛒 Your cart:\n\n")
	for i, line := range summary.Lines {
		fmt.Fprintf(&text, "%d. %s %s x%d = $%.2f\n", i+1, line.Glyph, line.ItemName, line.Quantity, line.TotalPrice)
	}
	fmt.Fprintf(&text, "\n💰 Total: $%.2f", summary.GrandTotal)

	return models.View{
		Text: text.String(),
		Choices: []models.Choice{
			{Label: "✅ Checkout", Action: tokCheckoutBegin},
			{Label: "🗑️ Clear Cart", Action: tokCartClear},
			{Label: "⬅️ Back", Action: tokMenuHome},
		},
	}
}

// DeliveryMethodView offers the two hand-over methods
func DeliveryMethodView() models.View {
	return models.View{
		Text: "📦 How would you like your order?",
		Choices: []models.Choice{
			{Label: "🏪 Pickup", Action: finalizeToken(models.DeliveryPickup)},
			{Label: "🚚 Delivery", Action: finalizeToken(models.DeliveryDelivery)},
			{Label: "⬅️ Back", Action: tokCartView},
		},
	}
}

// ConfirmationView is the customer-facing order confirmation
func ConfirmationView(order *models.Order) models.View {
	var text strings.Builder
	fmt.Fprintf(&text, "🧾 Order #%s\n", order.ID)
	fmt.Fprintf(&text, "📦 Method: %s\n", methodLabel(order.Method))
	fmt.Fprintf(&text, "👤 Customer: %s\n", order.CustomerName)
	fmt.Fprintf(&text, "🕒 Time: %s\n\n", order.PlacedAt.Format("2006-01-02 15:04:05"))

	for i, line := range order.Lines {
		fmt.Fprintf(&text, "%d. %s %s\n", i+1, line.Glyph, line.ItemName)
		fmt.Fprintf(&text, "   📏 Size: %s\n", line.SizeLabel)
		if line.SugarLabel != "" {
			fmt.Fprintf(&text, "   🍬 Sugar: %s\n", line.SugarLabel)
		}
		if line.IceLabel != "" {
			fmt.Fprintf(&text, "   🧊 Ice: %s\n", line.IceLabel)
		}
		fmt.Fprintf(&text, "   🔢 Quantity: %d\n", line.Quantity)
		fmt.Fprintf(&text, "   💰 $%.2f\n\n", line.TotalPrice)
	}

	fmt.Fprintf(&text, "💰 Grand total: $%.2f\n", order.GrandTotal)
	text.WriteString("🙏 Thank you for your order!")

	return models.View{
		Text:    text.String(),
		Choices: []models.Choice{{Label: "🏠 Back to Menu", Action: tokMenuHome}},
	}
}

// UnknownActionView answers tokens outside the action grammar
func UnknownActionView() models.View {
	return models.View{
		Text:    "❓ I didn't understand that action.",
		Choices: []models.Choice{{Label: "🏠 Back to Menu", Action: tokMenuHome}},
	}
}

// ErrorView wraps a plain-language error message with a way home
func ErrorView(text string) models.View {
	return models.View{
		Text:    text,
		Choices: []models.Choice{{Label: "🏠 Back to Menu", Action: tokMenuHome}},
	}
}
