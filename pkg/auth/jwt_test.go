package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenPair(t *testing.T, expiry time.Duration) (*JWTGenerator, *JWTValidator) {
	t.Helper()

	generator, err := NewJWTGenerator(JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     "test-secret",
		Issuer:        "merculy-backend",
		ExpiryTime:    expiry,
	})
	require.NoError(t, err)

	validator, err := NewJWTValidator(JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     "test-secret",
		Issuer:        "merculy-backend",
	})
	require.NoError(t, err)

	return generator, validator
}

func TestTokenRoundTrip(t *testing.T) {
	generator, validator := newTokenPair(t, time.Hour)

	token, err := generator.GenerateToken("user-1", "ana@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestExpiredToken(t *testing.T) {
	generator, validator := newTokenPair(t, -time.Minute)

	token, err := generator.GenerateToken("user-1", "ana@example.com")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestWrongSecretRejected(t *testing.T) {
	generator, _ := newTokenPair(t, time.Hour)

	other, err := NewJWTValidator(JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     "different-secret",
		Issuer:        "merculy-backend",
	})
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "ana@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestWrongIssuerRejected(t *testing.T) {
	generator, err := NewJWTGenerator(JWTGeneratorConfig{
		SigningMethod: "HS256",
		SecretKey:     "test-secret",
		Issuer:        "someone-else",
		ExpiryTime:    time.Hour,
	})
	require.NoError(t, err)

	_, validator := newTokenPair(t, time.Hour)

	token, err := generator.GenerateToken("user-1", "ana@example.com")
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	require.Error(t, err)
}

func TestMissingSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{SigningMethod: "HS256"})
	require.Error(t, err)

	_, err = NewJWTGenerator(JWTGeneratorConfig{SigningMethod: "HS256"})
	require.Error(t, err)
}
