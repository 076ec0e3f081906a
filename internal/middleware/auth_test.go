package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"lace-store/internal/domain"
	"lace-store/internal/repository"
	"lace-store/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "middleware-test-secret"

func newTokenService(t *testing.T) service.UserService {
	t.Helper()
	return service.NewUserService(repository.NewMemory().Users, testSecret, time.Hour)
}

func signClaims(t *testing.T, claims service.Claims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestProperty_ProtectedEndpointsRejectMissingTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)
	handler := AuthMiddleware(newTokenService(t), zap.NewNop())(okHandler())

	properties.Property("requests without authorization header are rejected", prop.ForAll(
		func(pathSuffix string, method string) bool {
			req := httptest.NewRequest(method, "/api/admin/"+pathSuffix, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
		gen.OneConstOf("GET", "POST", "PUT", "DELETE"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ExpiredTokensAreRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)
	handler := AuthMiddleware(newTokenService(t), zap.NewNop())(okHandler())

	properties.Property("expired tokens are rejected with 401", prop.ForAll(
		func(userID string, role domain.Role) bool {
			token := signClaims(t, service.Claims{
				UserID: userID,
				Role:   role,
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				},
			}, testSecret)

			req := httptest.NewRequest("GET", "/api/admin/orders", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.Identifier(),
		gen.OneConstOf(domain.RoleAdmin, domain.RoleManager),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ValidTokensCarryTheStoredRole(t *testing.T) {
	properties := gopter.NewProperties(nil)
	users := repository.NewMemory().Users
	tokens := service.NewUserService(users, testSecret, time.Hour)
	seq := 0

	properties.Property("the handler sees the account's current role, whatever the token claims", prop.ForAll(
		func(name string, claimed, stored domain.Role) bool {
			seq++
			user := &domain.User{Email: name + strconv.Itoa(seq) + "@lace.test", Name: name, Role: stored}
			if err := users.Create(context.Background(), user); err != nil {
				return false
			}

			token := signClaims(t, service.Claims{
				UserID: user.ID,
				Role:   claimed,
				RegisteredClaims: jwt.RegisteredClaims{
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				},
			}, testSecret)

			var gotID string
			var gotRole domain.Role
			handler := AuthMiddleware(tokens, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = GetUserID(r.Context())
				gotRole, _ = GetUserRole(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/api/auth/me", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			return w.Code == http.StatusOK && gotID == user.ID && gotRole == stored
		},
		gen.Identifier(),
		gen.OneConstOf(domain.RoleAdmin, domain.RoleManager),
		gen.OneConstOf(domain.RoleAdmin, domain.RoleManager),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAuthMiddlewareRejectsDeletedAccounts(t *testing.T) {
	users := repository.NewMemory().Users
	tokens := service.NewUserService(users, testSecret, time.Hour)
	ctx := context.Background()

	_, err := tokens.Register(ctx, "former@lace.test", "Former", "secret-pass", domain.RoleAdmin)
	require.NoError(t, err)
	token, user, err := tokens.Login(ctx, "former@lace.test", "secret-pass")
	require.NoError(t, err)
	require.NoError(t, tokens.DeleteUser(ctx, user.ID))

	handler := AuthMiddleware(tokens, zap.NewNop())(okHandler())
	req := httptest.NewRequest("GET", "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareReportsExpiry(t *testing.T) {
	handler := AuthMiddleware(newTokenService(t), zap.NewNop())(okHandler())
	token := signClaims(t, service.Claims{
		UserID: "1",
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, testSecret)

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token expired")
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	tokens := newTokenService(t)
	handler := AuthMiddleware(tokens, zap.NewNop())(okHandler())

	foreign := signClaims(t, service.Claims{
		UserID: "1",
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, "someone-else")

	for name, header := range map[string]string{
		"basic scheme":  "Basic dXNlcjpwYXNz",
		"empty bearer":  "Bearer ",
		"no scheme":     "abc.def.ghi",
		"garbage token": "Bearer not-a-jwt",
		"wrong secret":  "Bearer " + foreign,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/admin/orders", nil)
			req.Header.Set("Authorization", header)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddlewareAcceptsLoginToken(t *testing.T) {
	users := repository.NewMemory().Users
	tokens := service.NewUserService(users, testSecret, time.Hour)
	ctx := context.Background()

	_, err := tokens.Register(ctx, "manager@lace.test", "Nodira", "secret-pass", domain.RoleManager)
	require.NoError(t, err)
	token, user, err := tokens.Login(ctx, "manager@lace.test", "secret-pass")
	require.NoError(t, err)

	var gotID string
	handler := AuthMiddleware(tokens, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, user.ID, gotID)
}

func TestRequireRole(t *testing.T) {
	logger := zap.NewNop()

	withRole := func(role domain.Role) *http.Request {
		req := httptest.NewRequest("DELETE", "/api/admin/users/1", nil)
		ctx := context.WithValue(req.Context(), UserRoleKey, role)
		return req.WithContext(ctx)
	}

	tests := []struct {
		name    string
		guard   func(http.Handler) http.Handler
		request *http.Request
		want    int
	}{
		{"admin passes admin guard", RequireAdmin(logger), withRole(domain.RoleAdmin), http.StatusOK},
		{"manager blocked by admin guard", RequireAdmin(logger), withRole(domain.RoleManager), http.StatusForbidden},
		{"manager passes staff guard", RequireStaff(logger), withRole(domain.RoleManager), http.StatusOK},
		{"admin passes staff guard", RequireStaff(logger), withRole(domain.RoleAdmin), http.StatusOK},
		{"unknown role blocked", RequireStaff(logger), withRole(domain.Role("customer")), http.StatusForbidden},
		{"missing role blocked", RequireStaff(logger), httptest.NewRequest("GET", "/api/admin/orders", nil), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.guard(okHandler()).ServeHTTP(w, tt.request)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
