package transport

import (
	"errors"
	"net/http"

	"lace-store/internal/datastore"
	"lace-store/internal/domain"
	"lace-store/internal/middleware"
	"lace-store/internal/notification"
	"lace-store/internal/repository"
	"lace-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// statusFor maps storage and service errors to HTTP status codes
func statusFor(err error) int {
	var storeErr *datastore.StatusError

	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrItemNotInCart):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrSlugTaken), errors.Is(err, repository.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidItem),
		errors.Is(err, service.ErrMissingContact),
		errors.Is(err, service.ErrSlugRequired),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrOptionsRequired),
		errors.Is(err, service.ErrInvalidCartToken),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, notification.ErrNoBotToken),
		errors.Is(err, notification.ErrNoActiveChats):
		return http.StatusBadRequest
	case errors.As(err, &storeErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError writes err in the error envelope. Client errors carry
// the error text; server errors are logged and hidden behind fallback.
func respondWithServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, status, fallback)
	case http.StatusBadGateway:
		logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, status, "data store unavailable")
	default:
		logger.Debug(fallback, zap.Error(err))
		middleware.RespondWithError(w, status, err.Error())
	}
}

// decodeRequest decodes and validates the body into v, answering 400 itself on failure
func decodeRequest(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	if err := middleware.DecodeAndValidate(w, r, v); err != nil {
		logger.Debug("Request validation failed", zap.String("path", r.URL.Path), zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
