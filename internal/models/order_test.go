package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"coffee-shop-bot/internal/models"
)

func TestGenerateOrderID(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "ORD20250601123045", models.GenerateOrderID(at))

	// Identifiers are timestamped in UTC regardless of the local zone.
	offset := time.FixedZone("UTC+5", 5*60*60)
	assert.Equal(t, "ORD20250601123045", models.GenerateOrderID(at.In(offset)))
}

func TestCategoryValidation(t *testing.T) {
	assert.True(t, models.CategoryCoffee.Valid())
	assert.True(t, models.CategoryFood.Valid())
	assert.True(t, models.CategoryDrinks.Valid())
	assert.False(t, models.Category("desserts").Valid())

	assert.True(t, models.CategoryCoffee.HasBeverageOptions())
	assert.True(t, models.CategoryDrinks.HasBeverageOptions())
	assert.False(t, models.CategoryFood.HasBeverageOptions())
}

func TestDeliveryMethodValidation(t *testing.T) {
	assert.True(t, models.DeliveryPickup.Valid())
	assert.True(t, models.DeliveryDelivery.Valid())
	assert.False(t, models.DeliveryMethod("teleport").Valid())
	assert.False(t, models.DeliveryMethod("").Valid())
}

func TestDraftOrderEmpty(t *testing.T) {
	assert.True(t, models.DraftOrder{}.Empty())
	assert.False(t, models.DraftOrder{Category: models.CategoryCoffee, ItemName: "Latte"}.Empty())
}

func TestOrderNoticeFormat(t *testing.T) {
	notice := &models.OrderNotice{
		OrderID:        "ORD20250601123045",
		DeliveryMethod: models.DeliveryPickup,
		CustomerName:   "Alice A",
		Lines: []models.CartLine{
			{Category: models.CategoryCoffee, ItemName: "Latte", Glyph: "🥛",
				SizeLabel: "Large", SugarLabel: "No Sugar", IceLabel: "Normal Ice",
				Quantity: 2, TotalPrice: 10.00},
			{Category: models.CategoryFood, ItemName: "Croissant", Glyph: "🥐",
				SizeLabel: "Medium", Quantity: 1, TotalPrice: 2.75},
		},
		GrandTotal: 12.75,
		PlacedAt:   time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC),
	}

	text := notice.Format()
	assert.Contains(t, text, "New order #ORD20250601123045")
	assert.Contains(t, text, "Customer: Alice A")
	assert.Contains(t, text, "Sugar: No Sugar")
	assert.Contains(t, text, "Grand total: $12.75")

	// Food lines carry no sugar or ice rows.
	croissant := text[strings.Index(text, "Croissant"):]
	assert.NotContains(t, croissant, "Sugar")
	assert.NotContains(t, croissant, "Ice")
}
