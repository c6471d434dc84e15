// Package auth is the single authoritative session-state store: it issues
// and verifies signed tokens and resolves them into an (identity, role)
// pair. Nothing else in the system inspects credentials.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"food-preorder/internal/models"
)

// TokenManager issues and parses session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given signing secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue creates a signed session token for the given identity.
func (m *TokenManager) Issue(identity models.Identity) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.AccountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a session token and resolves it into an identity.
func (m *TokenManager) Parse(tokenString string) (models.Identity, error) {
	var claims sessionClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return models.Identity{}, fmt.Errorf("invalid token")
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return models.Identity{}, fmt.Errorf("invalid token subject: %w", err)
	}

	role := models.Role(claims.Role)
	if !role.IsValid() {
		return models.Identity{}, fmt.Errorf("invalid token role: %q", claims.Role)
	}

	return models.Identity{AccountID: accountID, Role: role}, nil
}
