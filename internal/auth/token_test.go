package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	clientID := int64(7)
	token, expiresAt, err := tm.GenerateToken(42, "jane@example.com", domain.RoleClient, &clientID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	principal, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), principal.UserID)
	assert.Equal(t, "jane@example.com", principal.Email)
	assert.Equal(t, domain.RoleClient, principal.Role)
	require.NotNil(t, principal.ClientID)
	assert.Equal(t, int64(7), *principal.ClientID)
}

func TestTokenRoundTrip_NoClientID(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	token, _, err := tm.GenerateToken(9, "tech@example.com", domain.RoleTechnician, nil)
	require.NoError(t, err)

	principal, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTechnician, principal.Role)
	assert.Nil(t, principal.ClientID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tm := NewTokenManager("secret-a", 30)
	other := NewTokenManager("secret-b", 30)

	token, _, err := tm.GenerateToken(1, "a@example.com", domain.RoleAdministrator, nil)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 30)

	_, err := tm.ParseToken("not-a-jwt")
	assert.Error(t, err)
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("s3cret", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))
}
