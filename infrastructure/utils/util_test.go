package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	signed, err := GenerateToken(map[string]interface{}{"sub": "poller"}, "secret")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "poller", claims["sub"])
}

func TestGetCurrentTime(t *testing.T) {
	assert.Equal(t, time.UTC, GetCurrentTime().Location())
}
