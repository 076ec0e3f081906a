package transport

import (
	"net/http"
	"time"

	"lace-store/internal/domain"
	"lace-store/internal/middleware"
	"lace-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StatusRequest is the body of an order status change
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CleanupResponse lists the orders removed by a cleanup so the caller can archive them
type CleanupResponse struct {
	Removed int            `json:"removed"`
	Orders  []domain.Order `json:"orders"`
}

// OrderHandler serves checkout and the admin order desk
type OrderHandler struct {
	orders *service.OrderService
	logger *zap.Logger
	now    func() time.Time
}

func NewOrderHandler(orders *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger, now: time.Now}
}

// AdminRoutes registers the order desk endpoints for staff
func (h *OrderHandler) AdminRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /orders from the storefront checkout form
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CheckoutInput
	if !decodeRequest(w, r, h.logger, &input) {
		return
	}

	order, err := h.orders.Create(r.Context(), input)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to create order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// List handles GET /orders?status=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		parsed, err := domain.ParseOrderStatus(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = &parsed
	}

	orders, err := h.orders.List(r.Context(), status)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list orders")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get returns one order. Opening a new order marks it viewed.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.MarkViewed(r.Context(), urlParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get order")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), urlParam(r, "id"), status)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to update order status")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if err := h.orders.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to delete order")
		return
	}

	h.logger.Info("Order deleted", zap.String("order_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to count orders")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// Cleanup removes orders past the retention period and returns them
func (h *OrderHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := h.orders.Cleanup(r.Context(), h.now())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to clean up orders")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, CleanupResponse{Removed: len(removed), Orders: removed})
}
