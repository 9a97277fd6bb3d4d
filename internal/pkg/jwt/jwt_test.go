package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)
	employeeID := "0190a7a4-1b2c-7d3e-8f40-123456789abc"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "a@b.cd", &employeeID, user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, employeeID, claims["employee_id"])
	assert.Equal(t, "ADMIN", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_WithoutEmployee(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)

	token, _, err := svc.GenerateAccessToken("user-2", "admin@b.cd", nil, user.RoleAdmin)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Nil(t, claims["employee_id"])
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc", time.Now().Add(time.Hour).Unix())
	assert.True(t, svc.IsTokenRevoked("abc"))

	// An expired entry is pruned by the next revocation.
	svc.RevokeToken("old", time.Now().Add(-time.Minute).Unix())
	svc.RevokeToken("new", time.Now().Add(time.Hour).Unix())
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("new"))
}
