package utils

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferenceFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^QT-[0-9A-F]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref := GenerateReference("QT")
		assert.Regexp(t, pattern, ref)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestJWTManagerIssuesAndValidatesTokens(t *testing.T) {
	manager := NewJWTManager("test-secret", "booking-api", time.Minute)
	userID := uuid.New()

	token, err := manager.GenerateAccessToken(userID, "ops@example.com", "admin")
	require.NoError(t, err)

	claims, err := manager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTManagerRejectsForeignIssuerAndExpiry(t *testing.T) {
	other := NewJWTManager("test-secret", "someone-else", time.Minute)
	token, err := other.GenerateAccessToken(uuid.New(), "x@example.com", "admin")
	require.NoError(t, err)

	manager := NewJWTManager("test-secret", "booking-api", time.Minute)
	_, err = manager.ValidateAccessToken(token)
	assert.Error(t, err)

	expired := NewJWTManager("test-secret", "booking-api", -time.Minute)
	token, err = expired.GenerateAccessToken(uuid.New(), "x@example.com", "admin")
	require.NoError(t, err)
	_, err = manager.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
