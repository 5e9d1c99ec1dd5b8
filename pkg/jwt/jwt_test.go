package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("access", "refresh", 15*time.Minute, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	profile := Claims{Name: "Guest User", Email: "guest@joyability.app", Provider: "guest", Anonymous: true, EmailVerified: true}

	token, err := m.GenerateAccessToken("guest-joyability", profile)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "guest-joyability", claims.UID())
	assert.Equal(t, "Guest User", claims.Name)
	assert.True(t, claims.Anonymous)
	assert.NotEmpty(t, claims.ID)

	_, err = m.ValidateRefreshToken(token)
	assert.Error(t, err, "access token must not pass as a refresh token")
}

func TestExpiredToken(t *testing.T) {
	m := newTestManager()
	issued := time.Now().Add(-time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateAccessToken("u1", Claims{Provider: "google"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestRejectsForeignSecret(t *testing.T) {
	token, err := NewManager("other", "other", time.Minute, time.Minute).GenerateAccessToken("u1", Claims{})
	require.NoError(t, err)

	_, err = newTestManager().ValidateAccessToken(token)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrExpired)
}

func TestHashToken(t *testing.T) {
	m := newTestManager()
	a, err := m.HashToken("abc")
	require.NoError(t, err)
	b, _ := m.HashToken("abc")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	_, err = m.HashToken("")
	assert.Error(t, err)
}
