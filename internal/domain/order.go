package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a cart line or an order item
type LineItem struct {
	ProductID     string          `json:"productId" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity" validate:"gte=0"`
	Image         string          `json:"image,omitempty"`
	Size          string          `json:"size,omitempty"`
	Color         string          `json:"color,omitempty"`
	PropertyIDs   []string        `json:"propertyIds,omitempty"`
	CollectionIDs []string        `json:"collectionIds,omitempty"`
}

// Subtotal returns price multiplied by quantity
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total sums the subtotals of all items
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Order represents a customer order
type Order struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email,omitempty"`
	Address   string          `json:"address,omitempty"`
	Comment   string          `json:"comment,omitempty"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    OrderStatus     `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (o *Order) GetID() string   { return o.ID }
func (o *Order) SetID(id string) { o.ID = id }

// ItemCount returns the number of units in the order
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}
