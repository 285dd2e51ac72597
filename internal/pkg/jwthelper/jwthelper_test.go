package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-signing-key")

func TestGenerateAndParseToken(t *testing.T) {
	signed, err := GenerateToken(testKey, 42, "parent")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := ParseToken(testKey, signed)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "parent", claims.Role)
	assert.Equal(t, "42", claims.Subject)

	expiry := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(TokenLifetime), expiry, time.Minute)
}

func TestParseToken_WrongKey(t *testing.T) {
	signed, err := GenerateToken(testKey, 42, "parent")
	require.NoError(t, err)

	_, err = ParseToken([]byte("someone-else"), signed)
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
		UserID: 42,
		Role:   "parent",
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	_, err = ParseToken(testKey, signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_RejectsUnexpectedAlgorithm(t *testing.T) {
	// Tokens signed with "none" must never validate.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, UserClaims{UserID: 42})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(testKey, signed)
	assert.Error(t, err)
}
