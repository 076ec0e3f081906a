package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lace-store/internal/domain"
	"lace-store/internal/middleware"
	"lace-store/internal/notification"
	"lace-store/internal/repository"
	"lace-store/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[middleware.ErrorResponse](t, w).Error.Message
}

type countingNotifier struct {
	created int
	changes []domain.OrderStatus
}

func (n *countingNotifier) OrderCreated(ctx context.Context, order *domain.Order) {
	n.created++
}

func (n *countingNotifier) OrderStatusChanged(ctx context.Context, order *domain.Order, from, to domain.OrderStatus) {
	n.changes = append(n.changes, to)
}

var _ service.OrderNotifier = (*countingNotifier)(nil)

type senderFunc func(ctx context.Context, token, chatID string, threadID int, text string) error

func (f senderFunc) SendMessage(ctx context.Context, token, chatID string, threadID int, text string) error {
	return f(ctx, token, chatID, threadID, text)
}

var _ notification.Sender = senderFunc(nil)

// withUser stores an authenticated user in the request context the way AuthMiddleware does
func withUser(id string, role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, id)
			ctx = context.WithValue(ctx, middleware.UserRoleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newOrderRouter(t *testing.T) (chi.Router, *repository.Repositories, *countingNotifier) {
	t.Helper()
	repos := repository.NewMemory()
	notifier := &countingNotifier{}
	handler := NewOrderHandler(service.NewOrderService(repos.Orders, notifier, zap.NewNop()), zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/orders", handler.Create)
	r.Route("/api/admin/orders", func(r chi.Router) {
		handler.AdminRoutes(r)
		r.Post("/cleanup", handler.Cleanup)
	})
	return r, repos, notifier
}
