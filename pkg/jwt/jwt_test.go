package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret", 15*time.Minute, 72*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken(42, "reader@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateRefreshToken(42)
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
}

func TestTokenTypeIsEnforced(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken(42, "reader@example.com")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken(42)
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	m := newTestManager()
	other := NewManager("other-secret", 15*time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken(42, "reader@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	m := newTestManager()

	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	expired := NewManager("test-secret", -time.Minute, -time.Minute)

	token, err := expired.GenerateAccessToken(42, "reader@example.com")
	require.NoError(t, err)

	m := newTestManager()
	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}
