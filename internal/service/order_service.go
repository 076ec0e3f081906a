package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"lace-store/internal/domain"
	"lace-store/internal/repository"

	"go.uber.org/zap"
)

// OrderRetention is how long orders are kept before the cleanup sweep removes them
const OrderRetention = 30 * 24 * time.Hour

var (
	ErrEmptyOrder     = errors.New("order must contain at least one item")
	ErrInvalidItem    = errors.New("order items need a product, a non-negative price and a quantity of at least 1")
	ErrMissingContact = errors.New("name and phone are required")
)

// Contact is the customer part of a checkout
type Contact struct {
	Name    string `json:"name" validate:"required,max=100"`
	Phone   string `json:"phone" validate:"required,max=32"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty" validate:"max=500"`
	Comment string `json:"comment,omitempty" validate:"max=1000"`
}

// CheckoutInput is a submitted order
type CheckoutInput struct {
	Contact
	Items []domain.LineItem `json:"items" validate:"required,min=1,dive"`
}

// OrderNotifier is told about order events after they are stored
type OrderNotifier interface {
	OrderCreated(ctx context.Context, order *domain.Order)
	OrderStatusChanged(ctx context.Context, order *domain.Order, from, to domain.OrderStatus)
}

// OrderService implements checkout and the admin order workflow
type OrderService struct {
	orders   repository.Store[domain.Order]
	notifier OrderNotifier
	logger   *zap.Logger
}

func NewOrderService(orders repository.Store[domain.Order], notifier OrderNotifier, logger *zap.Logger) *OrderService {
	return &OrderService{orders: orders, notifier: notifier, logger: logger}
}

// Create stores a new order with status new and a total computed from its items,
// then notifies subscribed chats. Notification never fails the call.
func (s *OrderService) Create(ctx context.Context, input CheckoutInput) (*domain.Order, error) {
	if err := validateCheckout(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]domain.LineItem, len(input.Items))
	copy(items, input.Items)

	order := &domain.Order{
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Email:     strings.TrimSpace(input.Email),
		Address:   strings.TrimSpace(input.Address),
		Comment:   strings.TrimSpace(input.Comment),
		Items:     items,
		Total:     domain.Total(items),
		Status:    domain.StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.Int("items", order.ItemCount()),
		zap.String("total", order.Total.String()),
	)

	s.notifier.OrderCreated(ctx, order)
	return order, nil
}

func validateCheckout(input CheckoutInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Phone) == "" {
		return ErrMissingContact
	}
	if len(input.Items) == 0 {
		return ErrEmptyOrder
	}
	for _, item := range input.Items {
		if item.ProductID == "" || item.Quantity < 1 || item.Price.IsNegative() {
			return ErrInvalidItem
		}
	}
	return nil
}

// List returns orders newest first, optionally only those with the given status
func (s *OrderService) List(ctx context.Context, status *domain.OrderStatus) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	if status != nil {
		return domain.FilterByStatus(orders, *status), nil
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// UpdateStatus overwrites the order status. Any status may follow any other.
// Setting the current status again changes nothing and sends nothing.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if previous == status {
		return order, nil
	}

	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", order.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	s.notifier.OrderStatusChanged(ctx, order, previous, status)
	return order, nil
}

// MarkViewed moves a new order to viewed when an admin opens it
func (s *OrderService) MarkViewed(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.StatusNew {
		return order, nil
	}
	return s.UpdateStatus(ctx, id, domain.StatusViewed)
}

// Cleanup deletes orders created more than OrderRetention before now and
// returns the removed orders for archiving
func (s *OrderService) Cleanup(ctx context.Context, now time.Time) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	cutoff := now.Add(-OrderRetention)
	removed := []domain.Order{}
	for _, order := range orders {
		if !order.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.orders.Delete(ctx, order.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return removed, fmt.Errorf("failed to delete order %s: %w", order.ID, err)
		}
		removed = append(removed, order)
	}

	if len(removed) > 0 {
		s.logger.Info("Old orders removed", zap.Int("count", len(removed)), zap.Time("cutoff", cutoff))
	}
	return removed, nil
}

// Stats counts orders per status
func (s *OrderService) Stats(ctx context.Context) (map[domain.OrderStatus]int, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return domain.CountByStatus(orders), nil
}
