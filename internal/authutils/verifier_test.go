package authutils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyweaver-server/internal/models"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewJWTVerifier_EmptySecret(t *testing.T) {
	_, err := NewJWTVerifier("", nil)
	assert.Error(t, err)
}

func TestVerifyToken_Valid(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)

	token := signToken(t, testSecret, "66f0c2a1b3d4e5f678901234", time.Now().Add(time.Hour))
	claims, err := v.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "66f0c2a1b3d4e5f678901234", claims.UserID)
}

func TestVerifyToken_Expired(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)

	token := signToken(t, testSecret, "66f0c2a1b3d4e5f678901234", time.Now().Add(-time.Hour))
	_, err = v.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrTokenExpired)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)

	token := signToken(t, "another-secret", "66f0c2a1b3d4e5f678901234", time.Now().Add(time.Hour))
	_, err = v.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestVerifyToken_Malformed(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)

	_, err = v.VerifyToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, models.ErrTokenMalformed)
}

func TestVerifyToken_MissingUserID(t *testing.T) {
	v, err := NewJWTVerifier(testSecret, nil)
	require.NoError(t, err)

	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = v.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}
