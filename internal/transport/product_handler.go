package transport

import (
	"net/http"

	"lace-store/internal/domain"
	"lace-store/internal/middleware"
	"lace-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler serves the storefront catalog and the admin product editor
type ProductHandler struct {
	products *service.ProductService
	logger   *zap.Logger
}

func NewProductHandler(products *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// ReadRoutes registers the public product endpoints
func (h *ProductHandler) ReadRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/slug/{slug}", h.GetBySlug)
	r.Get("/{id}", h.Get)
}

// WriteRoutes registers the admin product endpoints
func (h *ProductHandler) WriteRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /products?category=&collection=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := service.ProductFilter{
		CategoryID:   r.URL.Query().Get("category"),
		CollectionID: r.URL.Query().Get("collection"),
	}
	h.respondList(w, r, filter)
}

// ListByCollection handles GET /collections/{id}/products
func (h *ProductHandler) ListByCollection(w http.ResponseWriter, r *http.Request) {
	h.respondList(w, r, service.ProductFilter{CollectionID: urlParam(r, "id")})
}

func (h *ProductHandler) respondList(w http.ResponseWriter, r *http.Request, filter service.ProductFilter) {
	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), urlParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetBySlug(r.Context(), urlParam(r, "slug"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get product")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decodeRequest(w, r, h.logger, &product) {
		return
	}

	if err := h.products.Create(r.Context(), &product); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID), zap.String("slug", product.Slug))
	middleware.RespondWithJSON(w, http.StatusCreated, &product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decodeRequest(w, r, h.logger, &product) {
		return
	}

	id := urlParam(r, "id")
	if err := h.products.Update(r.Context(), id, &product); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to update product")
		return
	}

	h.logger.Info("Product updated", zap.String("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, &product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if err := h.products.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to delete product")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}
