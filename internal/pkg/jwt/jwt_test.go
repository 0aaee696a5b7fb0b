package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService("test-secret", 15*time.Minute, 24*time.Hour, false)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	employeeID := "emp-1"

	token, exp, err := svc.GenerateAccessToken("user-1", "ann@example.com", &employeeID, user.RoleEmployee)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)

	actor, err := ActorFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", actor.UserID)
	assert.Equal(t, user.RoleEmployee, actor.Role)
	require.NotNil(t, actor.EmployeeID)
	assert.Equal(t, "emp-1", *actor.EmployeeID)
}

func TestActorFromClaims_RejectsRefreshTokens(t *testing.T) {
	_, err := ActorFromClaims(map[string]interface{}{"type": TokenTypeRefresh, "user_id": "u", "role": "admin"})
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = ActorFromClaims(map[string]interface{}{"type": TokenTypeAccess, "user_id": "u", "role": "owner"})
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestParseRefreshToken(t *testing.T) {
	svc := newTestService()

	refresh, _, err := svc.GenerateRefreshToken("user-9")
	require.NoError(t, err)
	userID, err := svc.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-9", userID)

	access, _, err := svc.GenerateAccessToken("user-9", "x@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidClaims)

	_, err = svc.ParseRefreshToken("garbage")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService()
	assert.False(t, svc.IsTokenRevoked("abc"))

	svc.RevokeToken("abc", time.Now().Add(time.Minute).Unix())
	assert.True(t, svc.IsTokenRevoked("abc"))

	svc.RevokeToken("old", time.Now().Add(-time.Minute).Unix())
	svc.RevokeToken("new", time.Now().Add(time.Minute).Unix())
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("new"))
}

func TestRefreshTokenCookie(t *testing.T) {
	c := NewJWTService("s", time.Minute, time.Hour, true).RefreshTokenCookie("tok", time.Now().Unix())
	assert.Equal(t, "refresh_token", c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
}

func TestRevokeAccessToken(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, 24*time.Hour, false)

	token, _, err := svc.GenerateAccessToken("user-1", "a@example.com", nil, user.RoleHR)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAccessToken(token))
	assert.True(t, svc.IsTokenRevoked(token))

	assert.Error(t, svc.RevokeAccessToken("not-a-token"))
}
