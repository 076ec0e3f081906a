package transport

import (
	"net/http"

	"lace-store/internal/domain"
	"lace-store/internal/middleware"
	"lace-store/internal/notification"
	"lace-store/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TestResponse reports a "check connection" run
type TestResponse struct {
	Results []notification.ChatResult `json:"results"`
}

// TelegramHandler serves the admin notification settings page
type TelegramHandler struct {
	settings repository.SettingsRepository
	notifier *notification.Notifier
	chats    notification.ChatSource
	logger   *zap.Logger
}

func NewTelegramHandler(settings repository.SettingsRepository, notifier *notification.Notifier, chats notification.ChatSource, logger *zap.Logger) *TelegramHandler {
	return &TelegramHandler{settings: settings, notifier: notifier, chats: chats, logger: logger}
}

func (h *TelegramHandler) Routes(r chi.Router) {
	r.Get("/", h.GetSettings)
	r.Put("/", h.SaveSettings)
	r.Post("/test", h.Test)
	r.Get("/chats", h.DiscoverChats)
}

func (h *TelegramHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.GetTelegram(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to load telegram settings")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, settings)
}

func (h *TelegramHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.TelegramSettings
	if !decodeRequest(w, r, h.logger, &settings) {
		return
	}
	if settings.Chats == nil {
		settings.Chats = []domain.TelegramChat{}
	}
	// the single record is addressed by the repository, not the client
	settings.ID = ""

	if err := h.settings.SaveTelegram(r.Context(), &settings); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to save telegram settings")
		return
	}

	h.logger.Info("Telegram settings saved",
		zap.Bool("active", settings.IsActive),
		zap.Int("chats", len(settings.Chats)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, &settings)
}

func (h *TelegramHandler) Test(w http.ResponseWriter, r *http.Request) {
	results, err := h.notifier.Test(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to send test message")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, TestResponse{Results: results})
}

// DiscoverChats lists chats that wrote to the bot and are not registered yet
func (h *TelegramHandler) DiscoverChats(w http.ResponseWriter, r *http.Request) {
	chats, err := h.notifier.Discover(r.Context(), h.chats)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.logger.Warn("Telegram chat discovery failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusBadGateway, "telegram is unavailable")
			return
		}
		respondWithServiceError(w, h.logger, err, "failed to discover chats")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, chats)
}
