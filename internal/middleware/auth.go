package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"lace-store/internal/domain"
	"lace-store/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserRoleKey contextKey = "user_role"
)

// Authenticator resolves an access token to the account it belongs to
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*domain.User, error)
}

// AuthMiddleware validates bearer tokens and stores the user ID and current role in the request context
func AuthMiddleware(tokens Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug("Missing authorization header")
				RespondWithError(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || scheme != "Bearer" || tokenString == "" {
				logger.Debug("Invalid authorization header format")
				RespondWithError(w, http.StatusUnauthorized, "invalid authorization header format")
				return
			}

			user, err := tokens.Authenticate(r.Context(), tokenString)
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				logger.Debug("Token expired", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "token expired")
				return
			case errors.Is(err, service.ErrInvalidToken):
				logger.Debug("Token validation failed", zap.Error(err))
				RespondWithError(w, http.StatusUnauthorized, "invalid token")
				return
			case err != nil:
				logger.Error("Failed to authenticate request", zap.Error(err))
				RespondWithError(w, http.StatusInternalServerError, "failed to authenticate")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			ctx = context.WithValue(ctx, UserRoleKey, user.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts user ID from request context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUserRole extracts user role from request context
func GetUserRole(ctx context.Context) (domain.Role, bool) {
	role, ok := ctx.Value(UserRoleKey).(domain.Role)
	return role, ok
}
