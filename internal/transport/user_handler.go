package transport

import (
	"net/http"

	"lace-store/internal/domain"
	"lace-store/internal/middleware"
	"lace-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateUserRequest represents the admin's new-user form
type CreateUserRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Name     string      `json:"name" validate:"required,max=100"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     domain.Role `json:"role" validate:"required,oneof=admin manager"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	User        domain.User `json:"user"`
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// AdminRoutes registers user management for admins
func (h *UserHandler) AdminRoutes(r chi.Router) {
	r.Get("/", h.ListUsers)
	r.Post("/", h.CreateUser)
	r.Delete("/{id}", h.DeleteUser)
}

// Login handles user authentication
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	accessToken, user, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to login")
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	middleware.RespondWithJSON(w, http.StatusOK, LoginResponse{
		AccessToken: accessToken,
		User:        user.Public(),
	})
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get user profile")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, user.Public())
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list users")
		return
	}

	out := make([]domain.User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	middleware.RespondWithJSON(w, http.StatusOK, out)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to create user")
		return
	}

	h.logger.Info("User created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	middleware.RespondWithJSON(w, http.StatusCreated, user.Public())
}

// DeleteUser removes a user. Admins cannot delete their own account.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if current, _ := middleware.GetUserID(r.Context()); current == id {
		middleware.RespondWithError(w, http.StatusBadRequest, "you cannot delete your own account")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		respondWithServiceError(w, h.logger, err, "failed to delete user")
		return
	}

	h.logger.Info("User deleted", zap.String("user_id", id))
	w.WriteHeader(http.StatusNoContent)
}
