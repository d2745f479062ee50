package services

import (
	"context"
	"testing"
	"time"

	"jobportal/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsAdminRole(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svcs.Auth.Register(context.Background(), &RegisterRequest{
		Username: "mallory",
		Password: testPassword,
		Email:    "mallory@example.com",
		Role:     models.RoleAdmin,
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", models.RoleEmployee)

	_, err := env.svcs.Auth.Register(context.Background(), &RegisterRequest{
		Username: "alice",
		Password: testPassword,
		Email:    "alice2@example.com",
		Role:     models.RoleEmployee,
	})
	require.Error(t, err)
	assert.True(t, IsConflictError(err))
}

func TestLoginAndVerifyTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", models.RoleEmployee)

	resp, err := env.svcs.Auth.Login(context.Background(), &LoginRequest{
		Username: "alice",
		Password: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, models.RoleEmployee, resp.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	principal, err := env.svcs.Auth.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", principal.Username)
	assert.Equal(t, models.RoleEmployee, principal.Role)
	assert.Equal(t, "alice@example.com", principal.Email)
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "alice", models.RoleEmployee)

	_, err := env.svcs.Auth.Login(context.Background(), &LoginRequest{
		Username: "alice",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "UNAUTHORIZED"))
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	env := newTestEnv(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "alice",
		"role":  models.RoleEmployee,
		"email": "alice@example.com",
		"exp":   time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = env.svcs.Auth.VerifyToken(signed)
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "UNAUTHORIZED"))
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	env := newTestEnv(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "alice",
		"role": models.RoleEmployee,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = env.svcs.Auth.VerifyToken(signed)
	require.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svcs.Auth.VerifyToken("not-a-token")
	require.Error(t, err)
	assert.True(t, IsErrorType(err, "UNAUTHORIZED"))
}
