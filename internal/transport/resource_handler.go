package transport

import (
	"net/http"

	"lace-store/internal/middleware"
	"lace-store/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ResourceHandler serves plain CRUD for one collection
type ResourceHandler[T any, PT repository.EntityPtr[T]] struct {
	name    string
	store   repository.Store[T]
	prepare func(*T) error
	logger  *zap.Logger
}

// NewResourceHandler creates a handler for store. prepare, when set, runs on every
// created or updated entity before it is stored.
func NewResourceHandler[T any, PT repository.EntityPtr[T]](name string, store repository.Store[T], prepare func(*T) error, logger *zap.Logger) *ResourceHandler[T, PT] {
	return &ResourceHandler[T, PT]{
		name:    name,
		store:   store,
		prepare: prepare,
		logger:  logger.With(zap.String("resource", name)),
	}
}

// ReadRoutes registers the list and get endpoints
func (h *ResourceHandler[T, PT]) ReadRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
}

// WriteRoutes registers the create, update and delete endpoints
func (h *ResourceHandler[T, PT]) WriteRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *ResourceHandler[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list "+h.name)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, items)
}

func (h *ResourceHandler[T, PT]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.store.FindByID(r.Context(), urlParam(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get "+h.name)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, item)
}

func (h *ResourceHandler[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	var entity T
	if !decodeRequest(w, r, h.logger, &entity) {
		return
	}
	PT(&entity).SetID("")

	if !h.runPrepare(w, &entity) {
		return
	}

	if err := h.store.Create(r.Context(), &entity); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to create "+h.name)
		return
	}

	h.logger.Info("Record created", zap.String("id", PT(&entity).GetID()))
	middleware.RespondWithJSON(w, http.StatusCreated, &entity)
}

func (h *ResourceHandler[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if _, err := h.store.FindByID(r.Context(), id); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to update "+h.name)
		return
	}

	var entity T
	if !decodeRequest(w, r, h.logger, &entity) {
		return
	}
	PT(&entity).SetID(id)

	if !h.runPrepare(w, &entity) {
		return
	}

	if err := h.store.Update(r.Context(), &entity); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to update "+h.name)
		return
	}

	h.logger.Info("Record updated", zap.String("id", id))
	middleware.RespondWithJSON(w, http.StatusOK, &entity)
}

func (h *ResourceHandler[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to delete "+h.name)
		return
	}

	h.logger.Info("Record deleted", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourceHandler[T, PT]) runPrepare(w http.ResponseWriter, entity *T) bool {
	if h.prepare == nil {
		return true
	}
	if err := h.prepare(entity); err != nil {
		respondWithServiceError(w, h.logger, err, "invalid "+h.name)
		return false
	}
	return true
}
