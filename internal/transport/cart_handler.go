package transport

import (
	"net/http"

	"lace-store/internal/cart"
	"lace-store/internal/domain"
	"lace-store/internal/middleware"
	"lace-store/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartView is the cart as the storefront renders it
type CartView struct {
	Items []domain.LineItem `json:"items"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

func viewOf(c *cart.Cart) CartView {
	return CartView{Items: c.Items, Total: c.Total(), Count: c.Count()}
}

// QuantityRequest changes the quantity of one cart line
type QuantityRequest struct {
	cart.Key
	Quantity int `json:"quantity"`
}

// WishlistView is the wishlist plus, for toggles, whether the product is now in it
type WishlistView struct {
	ProductIDs []string `json:"productIds"`
	InWishlist *bool    `json:"inWishlist,omitempty"`
}

// CartHandler serves the anonymous cart and wishlist, keyed by a client-chosen token
type CartHandler struct {
	carts  *service.CartService
	logger *zap.Logger
}

func NewCartHandler(carts *service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

// CartRoutes registers the /cart/{token} endpoints except checkout
func (h *CartHandler) CartRoutes(r chi.Router) {
	r.Get("/", h.GetCart)
	r.Delete("/", h.ClearCart)
	r.Post("/items", h.AddItem)
	r.Patch("/items", h.UpdateItem)
	r.Delete("/items", h.RemoveItem)
}

// WishlistRoutes registers the /wishlist/{token} endpoints
func (h *CartHandler) WishlistRoutes(r chi.Router) {
	r.Get("/", h.GetWishlist)
	r.Post("/items/{productId}", h.AddToWishlist)
	r.Delete("/items/{productId}", h.RemoveFromWishlist)
	r.Post("/toggle/{productId}", h.ToggleWishlist)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), urlParam(r, "token"))
	h.respondCart(w, c, err)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), urlParam(r, "token")); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to clear cart")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item domain.LineItem
	if !decodeRequest(w, r, h.logger, &item) {
		return
	}
	c, err := h.carts.AddItem(r.Context(), urlParam(r, "token"), item)
	h.respondCart(w, c, err)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req QuantityRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	c, err := h.carts.UpdateItem(r.Context(), urlParam(r, "token"), req.Key, req.Quantity)
	h.respondCart(w, c, err)
}

// RemoveItem handles DELETE /cart/{token}/items?productId=&size=&color=
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := cart.Key{ProductID: q.Get("productId"), Size: q.Get("size"), Color: q.Get("color")}
	if key.ProductID == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "productId is required")
		return
	}
	c, err := h.carts.RemoveItem(r.Context(), urlParam(r, "token"), key)
	h.respondCart(w, c, err)
}

// Checkout turns the cart into an order
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var contact service.Contact
	if !decodeRequest(w, r, h.logger, &contact) {
		return
	}

	order, err := h.carts.Checkout(r.Context(), urlParam(r, "token"), contact)
	if err != nil {
		if order != nil {
			// the order exists, only the cart cleanup failed
			h.logger.Warn("Checkout left a stale cart", zap.String("order_id", order.ID), zap.Error(err))
			middleware.RespondWithJSON(w, http.StatusCreated, order)
			return
		}
		respondWithServiceError(w, h.logger, err, "failed to check out")
		return
	}
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	list, err := h.carts.Wishlist(r.Context(), urlParam(r, "token"))
	h.respondWishlist(w, list, nil, err)
}

func (h *CartHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	list, err := h.carts.AddToWishlist(r.Context(), urlParam(r, "token"), urlParam(r, "productId"))
	h.respondWishlist(w, list, nil, err)
}

func (h *CartHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	list, err := h.carts.RemoveFromWishlist(r.Context(), urlParam(r, "token"), urlParam(r, "productId"))
	h.respondWishlist(w, list, nil, err)
}

func (h *CartHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	productID := urlParam(r, "productId")
	list, err := h.carts.ToggleWishlist(r.Context(), urlParam(r, "token"), productID)
	var in *bool
	if err == nil {
		contains := list.Contains(productID)
		in = &contains
	}
	h.respondWishlist(w, list, in, err)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, c *cart.Cart, err error) {
	if err != nil {
		respondWithServiceError(w, h.logger, err, "cart operation failed")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, viewOf(c))
}

func (h *CartHandler) respondWishlist(w http.ResponseWriter, list *cart.Wishlist, in *bool, err error) {
	if err != nil {
		respondWithServiceError(w, h.logger, err, "wishlist operation failed")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, WishlistView{ProductIDs: list.ProductIDs, InWishlist: in})
}
