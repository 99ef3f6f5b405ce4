package utils

import (
	"testing"
	"time"

	"github.com/ramdanolii14/nyantube-sub000/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setJWTConfig(expireHours int) {
	config.Set(&config.Config{
		App: config.AppConfig{Name: "nyantube-test"},
		JWT: config.JWTConfig{Secret: "unit-test-secret", ExpireHours: expireHours},
	})
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	setJWTConfig(1)

	token, err := GenerateToken(42)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	setJWTConfig(1)

	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	setJWTConfig(1)
	token, err := GenerateToken(7)
	require.NoError(t, err)

	config.Set(&config.Config{
		App: config.AppConfig{Name: "nyantube-test"},
		JWT: config.JWTConfig{Secret: "a-different-secret", ExpireHours: 1},
	})

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
