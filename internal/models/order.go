package models

import (
	"fmt"
	"time"
)

// Category identifies a menu category
type Category string

const (
	CategoryCoffee Category = "coffee"
	CategoryFood   Category = "food"
	CategoryDrinks Category = "drinks"
)

// Valid reports whether the category is one of the known menu categories
func (c Category) Valid() bool {
	switch c {
	case CategoryCoffee, CategoryFood, CategoryDrinks:
		return true
	}
	return false
}

// HasBeverageOptions reports whether items of this category carry
// sugar and ice options. Food is size/quantity only.
func (c Category) HasBeverageOptions() bool {
	return c != CategoryFood
}

// OptionKind identifies an option set
type OptionKind string

const (
	OptionSize  OptionKind = "size"
	OptionSugar OptionKind = "sugar"
	OptionIce   OptionKind = "ice"
)

// Valid reports whether the kind names a known option set
func (k OptionKind) Valid() bool {
	switch k {
	case OptionSize, OptionSugar, OptionIce:
		return true
	}
	return false
}

// DeliveryMethod represents how a finalized order is handed over
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

// Valid reports whether the method is pickup or delivery
func (m DeliveryMethod) Valid() bool {
	return m == DeliveryPickup || m == DeliveryDelivery
}

// CatalogItem is a single orderable menu entry. Immutable after catalog load.
type CatalogItem struct {
	Category  Category `json:"category" yaml:"category"`
	Name      string   `json:"name" yaml:"name"`
	BasePrice float64  `json:"base_price" yaml:"price"`
	Glyph     string   `json:"glyph" yaml:"glyph"`
}

// OptionEntry is one choice within an option set
type OptionEntry struct {
	Key        string  `json:"key" yaml:"key"`
	Label      string  `json:"label" yaml:"label"`
	PriceDelta float64 `json:"price_delta" yaml:"price"`
	Default    bool    `json:"default" yaml:"default"`
}

// DraftOrder is the single in-progress item a user is customizing.
// One per user, owned by the session store, mutated only by the order builder.
type DraftOrder struct {
	Category  Category `json:"category"`
	ItemName  string   `json:"item_name"`
	BasePrice float64  `json:"base_price"`
	Glyph     string   `json:"glyph"`
	Size      string   `json:"size"`
	Sugar     string   `json:"sugar"`
	Ice       string   `json:"ice"`
	Quantity  int      `json:"quantity"`
}

// Empty reports whether no item has been selected yet
func (d DraftOrder) Empty() bool {
	return d.Category == "" && d.ItemName == ""
}

// CartLine is a committed, priced snapshot of a draft order. The label
// fields carry the displayed semantics of the snapshot: food lines keep
// their internal sugar/ice keys but have empty sugar/ice labels, so
// renderers never surface those options for food.
type CartLine struct {
	Category   Category `json:"category"`
	ItemName   string   `json:"item_name"`
	Glyph      string   `json:"glyph"`
	Size       string   `json:"size"`
	Sugar      string   `json:"sugar"`
	Ice        string   `json:"ice"`
	SizeLabel  string   `json:"size_label"`
	SugarLabel string   `json:"sugar_label,omitempty"`
	IceLabel   string   `json:"ice_label,omitempty"`
	Quantity   int      `json:"quantity"`
	TotalPrice float64  `json:"total_price"`
}

// CartSummary is a cart view with its computed grand total
type CartSummary struct {
	Lines      []CartLine `json:"lines"`
	GrandTotal float64    `json:"grand_total"`
}

// Order is the ephemeral checkout snapshot. It is rendered twice
// (customer confirmation, operator notice) and then discarded.
type Order struct {
	ID           string         `json:"order_id"`
	Method       DeliveryMethod `json:"delivery_method"`
	CustomerID   string         `json:"customer_id"`
	CustomerName string         `json:"customer_name"`
	Lines        []CartLine     `json:"lines"`
	GrandTotal   float64        `json:"grand_total"`
	PlacedAt     time.Time      `json:"placed_at"`
}

// GenerateOrderID generates an order identifier in format ORDyyyymmddhhmmss.
// Uniqueness within a single second is a documented weak guarantee.
func GenerateOrderID(t time.Time) string {
	return fmt.Sprintf("ORD%s", t.UTC().Format("20060102150405"))
}
