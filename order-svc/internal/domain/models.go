package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	ImageURL      string          `json:"image_url,omitempty"`
	HasAddons     bool            `json:"has_addons"`
	HasVariations bool            `json:"has_variations"`
	Addons        []string        `json:"addons"`
	Variations    []string        `json:"variations"`
	Available     bool            `json:"available"`
}

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
// Only pending orders move, and only to a terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == StatusPending && (next == StatusCompleted || next == StatusCancelled)
}

type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        OrderStatus     `json:"status"`
	// OrderDate is the local calendar day, YYYY-MM-DD.
	OrderDate string      `json:"order_date"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"order_items"`
}

type OrderItem struct {
	MenuItemID          string          `json:"menu_item_id"`
	Name                string          `json:"name"`
	Quantity            int             `json:"quantity"`
	Price               decimal.Decimal `json:"price"`
	SelectedAddons      []string        `json:"selected_addons"`
	SelectedVariation   string          `json:"selected_variation,omitempty"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
}

// ShortID is the first eight characters of an order id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

const EventOrderPlaced = "order_placed"

// OrderEvent is published after an order is committed.
type OrderEvent struct {
	Type          string          `json:"type"`
	OrderID       string          `json:"order_id"`
	CustomerEmail string          `json:"customer_email,omitempty"`
	OrderDate     string          `json:"order_date"`
	Total         decimal.Decimal `json:"total"`
	Items         []EventItem     `json:"items"`
	Timestamp     time.Time       `json:"timestamp"`
}

type EventItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
}

type PopularItem struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int64  `json:"quantity"`
}
