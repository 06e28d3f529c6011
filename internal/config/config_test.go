package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "helpdesk-service", cfg.App.Name)
	assert.Equal(t, 10, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, DefaultRoleScopes(), cfg.Auth.RoleScopes)
	assert.Equal(t, 10*time.Second, cfg.External.Timeout())
}

func TestLoadRoleScopesFromEnv(t *testing.T) {
	t.Setenv("AUTH_ROLE_SCOPES", `{"sysadmin":["admin","read"],"auditor":["read"]}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"admin", "read"}, cfg.Auth.RoleScopes["sysadmin"])
	assert.Equal(t, []string{"read"}, cfg.Auth.RoleScopes["auditor"])
	_, hasUser := cfg.Auth.RoleScopes["user"]
	assert.False(t, hasUser, "env mapping replaces the defaults wholesale")
}

func TestLoadRejectsMalformedRoleScopes(t *testing.T) {
	t.Setenv("AUTH_ROLE_SCOPES", `not-json`)

	_, err := Load()
	require.Error(t, err)
}

func TestDefaultRoleScopes(t *testing.T) {
	scopes := DefaultRoleScopes()
	assert.Equal(t, []string{"admin", "manage", "write", "read"}, scopes["sysadmin"])
	assert.Equal(t, []string{"read", "write"}, scopes["user"])
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
	assert.Equal(t, 30*time.Second, AppConfig{RequestTimeoutSeconds: 30}.RequestTimeout())
}

func TestAddr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080", AppConfig{Host: "0.0.0.0", Port: "8080"}.Addr())
}
