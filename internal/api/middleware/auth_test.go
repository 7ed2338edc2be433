package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prisma-study/srs-api/internal/api/shared"
	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/service/auth"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

func newTestMiddleware() (*AuthMiddleware, auth.JWTService) {
	jwtService := auth.NewTestJWTService(testSecret, time.Hour, time.Now)
	return NewAuthMiddleware(jwtService), jwtService
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	m, jwtService := newTestMiddleware()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := shared.GetUsername(r.Context())
		require.True(t, ok)
		role, ok := shared.GetRole(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Username", username)
		w.Header().Set("X-Role", string(role))
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		t.Parallel()
		token, err := jwtService.GenerateToken(context.Background(), "ana", domain.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ana", w.Header().Get("X-Username"))
		assert.Equal(t, string(domain.RoleUser), w.Header().Get("X-Role"))
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		w := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected on access routes", func(t *testing.T) {
		t.Parallel()
		refreshToken, err := jwtService.GenerateRefreshToken(
			context.Background(), "ana", domain.RoleUser)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+refreshToken)
		w := httptest.NewRecorder()

		m.Authenticate(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	m, _ := newTestMiddleware()

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req = req.WithContext(
			shared.WithIdentity(req.Context(), domain.AdminUsername, domain.RoleAdmin))
		w := httptest.NewRecorder()

		m.RequireAdmin(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("regular user is forbidden", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req = req.WithContext(shared.WithIdentity(req.Context(), "ana", domain.RoleUser))
		w := httptest.NewRecorder()

		m.RequireAdmin(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated request", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()

		m.RequireAdmin(okHandler).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
