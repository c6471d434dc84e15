package auth

import (
	"context"
	"net/http"
	"strings"

	"food-preorder/internal/api"
	"food-preorder/internal/models"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFrom returns the identity attached to the request context, if any.
func IdentityFrom(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	return identity, ok
}

// WithIdentity returns a copy of ctx carrying the identity. Exposed for tests.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Require rejects requests without a valid bearer token and attaches the
// resolved identity to the request context.
func (m *TokenManager) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		identity, err := m.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			api.WriteError(w, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}
