package models

import (
	"fmt"
	"strings"
	"time"
)

// OrderNotice is the operator notification payload published on checkout
type OrderNotice struct {
	OrderID        string         `json:"order_id"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	CustomerName   string         `json:"customer_name"`
	Lines          []CartLine     `json:"lines"`
	GrandTotal     float64        `json:"grand_total"`
	PlacedAt       time.Time      `json:"placed_at"`
}

// Format renders the notice as the human-readable operator message.
// Sugar and ice rows appear only on lines that carry those labels, so
// food lines stay size/quantity only.
func (n *OrderNotice) Format() string {
	var text strings.Builder
	fmt.Fprintf(&text, "🔔 New order #%s\n", n.OrderID)
	fmt.Fprintf(&text, "👤 Customer: %s\n", n.CustomerName)
	fmt.Fprintf(&text, "📦 Method: %s\n", n.DeliveryMethod)
	fmt.Fprintf(&text, "🕒 %s\n\n", n.PlacedAt.Format("2006-01-02 15:04:05"))

	for i, line := range n.Lines {
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

	fmt.Fprintf(&text, "💰 Grand total: $%.2f", n.GrandTotal)
	return text.String()
}

// NoticeFromOrder creates the operator notification payload for an order
func NoticeFromOrder(o *Order) *OrderNotice {
	return &OrderNotice{
		OrderID:        o.ID,
		DeliveryMethod: o.Method,
		CustomerName:   o.CustomerName,
		Lines:          o.Lines,
		GrandTotal:     o.GrandTotal,
		PlacedAt:       o.PlacedAt,
	}
}
