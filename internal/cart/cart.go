package cart

import (
	"lace-store/internal/domain"

	"github.com/shopspring/decimal"
)

// Key identifies a cart line: the same product in another size or color is a separate line
type Key struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// KeyOf returns the line key of an item
func KeyOf(item domain.LineItem) Key {
	return Key{ProductID: item.ProductID, Size: item.Size, Color: item.Color}
}

// Cart is a shopper's list of lines
type Cart struct {
	Items []domain.LineItem `json:"items"`
}

// New returns an empty cart
func New() *Cart {
	return &Cart{Items: []domain.LineItem{}}
}

// Add merges item into the cart. A line with the same key has its quantity
// increased, otherwise the item is appended. Quantities below 1 count as 1.
func (c *Cart) Add(item domain.LineItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	key := KeyOf(item)
	for i := range c.Items {
		if KeyOf(c.Items[i]) == key {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// It reports whether the line exists.
func (c *Cart) UpdateQuantity(key Key, quantity int) bool {
	for i := range c.Items {
		if KeyOf(c.Items[i]) != key {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		return true
	}
	return false
}

// Remove deletes a line and reports whether it existed
func (c *Cart) Remove(key Key) bool {
	return c.UpdateQuantity(key, 0)
}

func (c *Cart) Clear() {
	c.Items = []domain.LineItem{}
}

// Total sums price times quantity over all lines
func (c *Cart) Total() decimal.Decimal {
	return domain.Total(c.Items)
}

// Count returns the number of units in the cart
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
