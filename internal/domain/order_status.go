package domain

import (
	"errors"
	"strings"
)

var ErrInvalidStatus = errors.New("invalid order status")

// OrderStatus is the label of an order in the fulfilment workflow.
// Any status may be overwritten with any other; the set of values is the only guard.
type OrderStatus string

const (
	StatusNew        OrderStatus = "new"
	StatusViewed     OrderStatus = "viewed"
	StatusCalled     OrderStatus = "called"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

var allStatuses = []OrderStatus{
	StatusNew,
	StatusViewed,
	StatusCalled,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCompleted,
	StatusCancelled,
}

// AllStatuses returns every status in workflow order
func AllStatuses() []OrderStatus {
	out := make([]OrderStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further work is expected for the order
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ParseOrderStatus parses a status name, ignoring case and surrounding spaces
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// FilterByStatus returns the orders with the given status, keeping their relative order
func FilterByStatus(orders []Order, status OrderStatus) []Order {
	out := []Order{}
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// CountByStatus returns the number of orders per status, with every status present
func CountByStatus(orders []Order) map[OrderStatus]int {
	counts := make(map[OrderStatus]int, len(allStatuses))
	for _, s := range allStatuses {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}
