package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"lace-store/internal/cart"
	"lace-store/internal/domain"
)

var (
	ErrInvalidCartToken = errors.New("cart token must be 8-128 letters, digits, dashes or underscores")
	ErrItemNotInCart    = errors.New("item is not in the cart")
)

var cartTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// CartService keeps shopper carts and wishlists under client-chosen tokens
type CartService struct {
	storage cart.Storage
	orders  *OrderService
}

func NewCartService(storage cart.Storage, orders *OrderService) *CartService {
	return &CartService{storage: storage, orders: orders}
}

func checkToken(token string) error {
	if !cartTokenPattern.MatchString(token) {
		return ErrInvalidCartToken
	}
	return nil
}

// Get returns the stored cart, or an empty one
func (s *CartService) Get(ctx context.Context, token string) (*cart.Cart, error) {
	if err := checkToken(token); err != nil {
		return nil, err
	}
	c := cart.New()
	if _, err := s.storage.Load(ctx, cart.CartKey(token), c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []domain.LineItem{}
	}
	return c, nil
}

// mutate loads the cart, applies fn and saves the result
func (s *CartService) mutate(ctx context.Context, token string, fn func(*cart.Cart) error) (*cart.Cart, error) {
	c, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.storage.Save(ctx, cart.CartKey(token), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CartService) AddItem(ctx context.Context, token string, item domain.LineItem) (*cart.Cart, error) {
	if item.ProductID == "" || item.Price.IsNegative() {
		return nil, ErrInvalidItem
	}
	return s.mutate(ctx, token, func(c *cart.Cart) error {
		c.Add(item)
		return nil
	})
}

// UpdateItem sets a line's quantity; zero or less removes it
func (s *CartService) UpdateItem(ctx context.Context, token string, key cart.Key, quantity int) (*cart.Cart, error) {
	return s.mutate(ctx, token, func(c *cart.Cart) error {
		if !c.UpdateQuantity(key, quantity) {
			return ErrItemNotInCart
		}
		return nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, token string, key cart.Key) (*cart.Cart, error) {
	return s.mutate(ctx, token, func(c *cart.Cart) error {
		if !c.Remove(key) {
			return ErrItemNotInCart
		}
		return nil
	})
}

func (s *CartService) Clear(ctx context.Context, token string) error {
	if err := checkToken(token); err != nil {
		return err
	}
	return s.storage.Delete(ctx, cart.CartKey(token))
}

// Checkout turns the stored cart into an order and clears the cart
func (s *CartService) Checkout(ctx context.Context, token string, contact Contact) (*domain.Order, error) {
	c, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, ErrEmptyOrder
	}

	order, err := s.orders.Create(ctx, CheckoutInput{Contact: contact, Items: c.Items})
	if err != nil {
		return nil, err
	}

	if err := s.storage.Delete(ctx, cart.CartKey(token)); err != nil {
		return order, fmt.Errorf("order %s created but cart was not cleared: %w", order.ID, err)
	}
	return order, nil
}

// Wishlist returns the stored wishlist, or an empty one
func (s *CartService) Wishlist(ctx context.Context, token string) (*cart.Wishlist, error) {
	if err := checkToken(token); err != nil {
		return nil, err
	}
	w := cart.NewWishlist()
	if _, err := s.storage.Load(ctx, cart.WishlistKey(token), w); err != nil {
		return nil, err
	}
	if w.ProductIDs == nil {
		w.ProductIDs = []string{}
	}
	return w, nil
}

func (s *CartService) AddToWishlist(ctx context.Context, token, productID string) (*cart.Wishlist, error) {
	return s.mutateWishlist(ctx, token, func(w *cart.Wishlist) { w.Add(productID) })
}

func (s *CartService) RemoveFromWishlist(ctx context.Context, token, productID string) (*cart.Wishlist, error) {
	return s.mutateWishlist(ctx, token, func(w *cart.Wishlist) { w.Remove(productID) })
}

// ToggleWishlist flips membership of productID
func (s *CartService) ToggleWishlist(ctx context.Context, token, productID string) (*cart.Wishlist, error) {
	return s.mutateWishlist(ctx, token, func(w *cart.Wishlist) { w.Toggle(productID) })
}

func (s *CartService) mutateWishlist(ctx context.Context, token string, fn func(*cart.Wishlist)) (*cart.Wishlist, error) {
	w, err := s.Wishlist(ctx, token)
	if err != nil {
		return nil, err
	}
	fn(w)
	if err := s.storage.Save(ctx, cart.WishlistKey(token), w); err != nil {
		return nil, err
	}
	return w, nil
}
