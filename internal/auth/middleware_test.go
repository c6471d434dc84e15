package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-preorder/internal/models"
)

func TestRequire(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	identity := models.Identity{AccountID: uuid.New(), Role: models.RoleRestaurant}

	var seen models.Identity
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen, _ = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := manager.Require(next)

	t.Run("valid token passes identity through", func(t *testing.T) {
		token, err := manager.Issue(identity)
		require.NoError(t, err)

		called = false
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.True(t, called)
		assert.Equal(t, identity, seen)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/orders", nil)
		req.Header.Set("Authorization", "Token abc")
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		called = false
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/orders", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, called)
	})
}
