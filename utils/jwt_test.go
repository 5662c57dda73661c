package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testSecret, 42, "alice", TokenTypeAccess, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(testSecret, token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestParseJWTWrongType(t *testing.T) {
	refresh, err := GenerateJWT(testSecret, 42, "alice", TokenTypeRefresh, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(testSecret, refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenWrongType)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testSecret, 1, "bob", TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(testSecret, token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseJWTBadSignature(t *testing.T) {
	token, err := GenerateJWT("other-secret", 1, "bob", TokenTypeAccess, time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(testSecret, token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseJWTEmpty(t *testing.T) {
	_, err := ParseJWT(testSecret, "", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrTokenEmpty)
}
