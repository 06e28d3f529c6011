package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/config"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 10,
		BcryptCost:            testBcryptCost,
		RoleScopes:            config.DefaultRoleScopes(),
	}}
	return NewAuthService(cfg, users), users
}

func seedUser(t *testing.T, users *fakeUserRepo, username, password, role string) {
	t.Helper()
	svc := NewUserService(users, testBcryptCost)
	_, err := svc.Create(context.Background(), UserCreateInput{
		Username: username,
		Name:     "Test User",
		Email:    username + "@example.com",
		Password: password,
		Role:     role,
	})
	require.NoError(t, err)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), "ghost", "secret")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", domainErrCode(t, err))
	assert.Contains(t, err.Error(), "Invalid credentials")
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users := newAuthFixture(t)
	seedUser(t, users, "jdoe", "secret", "user")

	_, err := svc.Login(context.Background(), "jdoe", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect password")
}

func TestLoginIssuesScopedToken(t *testing.T) {
	svc, users := newAuthFixture(t)
	seedUser(t, users, "root", "secret", "sysadmin")

	result, err := svc.Login(context.Background(), "root", "secret")
	require.NoError(t, err)
	assert.Equal(t, "sysadmin", result.Role)
	assert.ElementsMatch(t, []string{"admin", "manage", "write", "read"}, result.Scopes)

	data, err := svc.TokenManager().VerifyToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.UserID, data.ID)
	assert.Equal(t, "root", data.Username)
	assert.ElementsMatch(t, result.Scopes, data.Scopes)
}

func TestLoginUnknownRoleGetsNoScopes(t *testing.T) {
	svc, users := newAuthFixture(t)
	seedUser(t, users, "odd", "secret", "auditor")

	result, err := svc.Login(context.Background(), "odd", "secret")
	require.NoError(t, err)
	assert.Empty(t, result.Scopes)
}
