package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	// sha256("admin123")
	assert.Equal(t, "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", Digest("admin123"))
	assert.NotEqual(t, Digest("admin123"), Digest("Admin123"))
	assert.Len(t, Digest(""), 64)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Empty(t, claims.ID)

	_, err = svc.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(7, "clerk")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)
	assert.Equal(t, "clerk", claims.Username)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("one").GenerateAccessToken(1, "admin")
	require.NoError(t, err)

	_, err = NewJWTService("two").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	secret := "test-secret"
	claims := &Claims{
		UserID:   1,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWTService(secret).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenStore_DisabledCacheHasNoSessions(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "id", 1, "admin", time.Minute))
	_, _, err := store.Get(ctx, "id")
	assert.Error(t, err)
	assert.NoError(t, store.Delete(ctx, "id"))
}
