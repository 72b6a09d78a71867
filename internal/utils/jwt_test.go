package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenPairRoundTrip(t *testing.T) {
	InitJWT("test-secret", time.Hour, 24*time.Hour)

	pair, err := GenerateTokenPair(42, "somchai", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := ValidateJWT(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "somchai", claims.Username)
	assert.Equal(t, "admin", claims.Role)

	refreshClaims, err := ValidateRefreshJWT(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), refreshClaims.UserID)
}

func TestValidateJWTRejectsRefreshToken(t *testing.T) {
	InitJWT("test-secret", time.Hour, 24*time.Hour)

	pair, err := GenerateTokenPair(1, "user", "employee")
	require.NoError(t, err)

	_, err = ValidateJWT(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateRefreshJWT(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	InitJWT("test-secret", -time.Minute, 24*time.Hour)

	pair, err := GenerateTokenPair(1, "user", "employee")
	require.NoError(t, err)

	_, err = ValidateJWT(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one", time.Hour, 24*time.Hour)
	pair, err := GenerateTokenPair(1, "user", "employee")
	require.NoError(t, err)

	InitJWT("secret-two", time.Hour, 24*time.Hour)
	_, err = ValidateJWT(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret", time.Hour, 24*time.Hour)

	_, err := ValidateJWT("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ValidateJWT("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
