package transport

import (
	"net/http"
	"testing"

	"lace-store/internal/cart"
	"lace-store/internal/domain"
	"lace-store/internal/repository"
	"lace-store/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const cartToken = "f3a9c2d1-shopper"

func newCartRouter(t *testing.T) (chi.Router, *countingNotifier) {
	t.Helper()
	repos := repository.NewMemory()
	notifier := &countingNotifier{}
	orders := service.NewOrderService(repos.Orders, notifier, zap.NewNop())
	handler := NewCartHandler(service.NewCartService(cart.NewMemoryStorage(), orders), zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/cart/{token}", func(r chi.Router) {
		handler.CartRoutes(r)
		r.Post("/checkout", handler.Checkout)
	})
	r.Route("/api/wishlist/{token}", handler.WishlistRoutes)
	return r, notifier
}

func TestCartAddMergesSameVariant(t *testing.T) {
	router, _ := newCartRouter(t)
	path := "/api/cart/" + cartToken + "/items"

	line := item("7", 120000, 1)
	line["color"] = "black"

	require.Equal(t, http.StatusOK, doJSON(t, router, http.MethodPost, path, line).Code)
	w := doJSON(t, router, http.MethodPost, path, line)
	require.Equal(t, http.StatusOK, w.Code)

	view := decodeBody[CartView](t, w)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.Equal(t, 2, view.Count)
	assert.True(t, decimal.NewFromInt(240000).Equal(view.Total))

	other := item("7", 120000, 1)
	other["color"] = "white"
	view = decodeBody[CartView](t, doJSON(t, router, http.MethodPost, path, other))
	assert.Len(t, view.Items, 2)
	assert.Equal(t, 3, view.Count)
}

func TestProperty_CartViewTotalMatchesLines(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("cart total equals the sum of line subtotals", prop.ForAll(
		func(qty int, price int64) bool {
			router, _ := newCartRouter(t)
			w := doJSON(t, router, http.MethodPost, "/api/cart/"+cartToken+"/items", item("p", price, qty))
			if w.Code != http.StatusOK {
				return false
			}
			view := decodeBody[CartView](t, w)
			return view.Count == qty && view.Total.Equal(decimal.NewFromInt(price*int64(qty)))
		},
		gen.IntRange(1, 20),
		gen.Int64Range(0, 1000000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCartUpdateAndRemove(t *testing.T) {
	router, _ := newCartRouter(t)
	base := "/api/cart/" + cartToken

	doJSON(t, router, http.MethodPost, base+"/items", item("1", 100, 1))
	doJSON(t, router, http.MethodPost, base+"/items", item("2", 50, 1))

	w := doJSON(t, router, http.MethodPatch, base+"/items", QuantityRequest{
		Key:      cart.Key{ProductID: "1", Size: "75B"},
		Quantity: 4,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 5, decodeBody[CartView](t, w).Count)

	w = doJSON(t, router, http.MethodPatch, base+"/items", QuantityRequest{Key: cart.Key{ProductID: "9"}, Quantity: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPatch, base+"/items", map[string]int{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodDelete, base+"/items?productId=2&size=75B", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeBody[CartView](t, w)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "1", view.Items[0].ProductID)

	w = doJSON(t, router, http.MethodDelete, base+"/items", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNoContent, doJSON(t, router, http.MethodDelete, base, nil).Code)
	view = decodeBody[CartView](t, doJSON(t, router, http.MethodGet, base, nil))
	assert.Empty(t, view.Items)
	assert.True(t, view.Total.IsZero())
}

func TestCartRejectsBadToken(t *testing.T) {
	router, _ := newCartRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/cart/short", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/wishlist/bad$token$value", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutCreatesOrderAndEmptiesCart(t *testing.T) {
	router, notifier := newCartRouter(t)
	base := "/api/cart/" + cartToken

	w := doJSON(t, router, http.MethodPost, base+"/checkout", map[string]string{"name": "Zarina", "phone": "+992 93 000 11 22"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "empty cart")

	doJSON(t, router, http.MethodPost, base+"/items", item("1", 300000, 2))

	w = doJSON(t, router, http.MethodPost, base+"/checkout", map[string]string{"name": "Zarina"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 2, decodeBody[CartView](t, doJSON(t, router, http.MethodGet, base, nil)).Count)

	w = doJSON(t, router, http.MethodPost, base+"/checkout", map[string]string{"name": "Zarina", "phone": "+992 93 000 11 22"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	order := decodeBody[domain.Order](t, w)
	assert.True(t, decimal.NewFromInt(600000).Equal(order.Total))
	assert.Equal(t, domain.StatusNew, order.Status)
	assert.Equal(t, 1, notifier.created)

	assert.Empty(t, decodeBody[CartView](t, doJSON(t, router, http.MethodGet, base, nil)).Items)
}

func TestWishlistEndpoints(t *testing.T) {
	router, _ := newCartRouter(t)
	base := "/api/wishlist/" + cartToken

	doJSON(t, router, http.MethodPost, base+"/items/10", nil)
	w := doJSON(t, router, http.MethodPost, base+"/items/10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"10"}, decodeBody[WishlistView](t, w).ProductIDs)

	w = doJSON(t, router, http.MethodPost, base+"/toggle/11", nil)
	view := decodeBody[WishlistView](t, w)
	require.NotNil(t, view.InWishlist)
	assert.True(t, *view.InWishlist)
	assert.Equal(t, []string{"10", "11"}, view.ProductIDs)

	w = doJSON(t, router, http.MethodPost, base+"/toggle/10", nil)
	view = decodeBody[WishlistView](t, w)
	assert.False(t, *view.InWishlist)

	w = doJSON(t, router, http.MethodDelete, base+"/items/11", nil)
	assert.Empty(t, decodeBody[WishlistView](t, w).ProductIDs)

	// the cart under the same token is untouched
	assert.Empty(t, decodeBody[CartView](t, doJSON(t, router, http.MethodGet, "/api/cart/"+cartToken, nil)).Items)
}
