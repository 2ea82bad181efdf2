package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims TokenClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTValidator_ValidToken(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "")
	require.NoError(t, err)

	tokenString := signToken(t, testSecret, TokenClaims{
		Username: "alice",
		Groups:   "admins,editors",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	user, err := validator.ValidateToken(tokenString)

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, []string{"admins", "editors"}, user.Groups)
	assert.True(t, user.IsAdmin())
}

func TestJWTValidator_ExpiredToken(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "")
	require.NoError(t, err)

	tokenString := signToken(t, testSecret, TokenClaims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err = validator.ValidateToken(tokenString)

	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTValidator_WrongSecret(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "")
	require.NoError(t, err)

	tokenString := signToken(t, "other-secret", TokenClaims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err = validator.ValidateToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWTValidator_MissingUsernameClaim(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "")
	require.NoError(t, err)

	tokenString := signToken(t, testSecret, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err = validator.ValidateToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidator_IssuerMismatch(t *testing.T) {
	validator, err := NewJWTValidator(testSecret, "expected-issuer")
	require.NoError(t, err)

	tokenString := signToken(t, testSecret, TokenClaims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "other-issuer",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err = validator.ValidateToken(tokenString)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTValidator_RequiresSecret(t *testing.T) {
	_, err := NewJWTValidator("", "")

	assert.Error(t, err)
}
