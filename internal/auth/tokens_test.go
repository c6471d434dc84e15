package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-preorder/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	identity := models.Identity{AccountID: uuid.New(), Role: models.RoleCustomer}

	token, err := manager.Issue(identity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := manager.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, identity.AccountID, parsed.AccountID)
	assert.Equal(t, identity.Role, parsed.Role)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("different-secret", time.Hour)

	token, err := manager.Issue(models.Identity{AccountID: uuid.New(), Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Issue(models.Identity{AccountID: uuid.New(), Role: models.RoleCustomer})
	require.NoError(t, err)

	_, err = manager.Parse(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	_, err := manager.Parse("not.a.token")
	assert.Error(t, err)
}
