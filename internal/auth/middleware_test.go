package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func newProtectedApp(t *testing.T, tm *TokenManager, requiredScopes ...string) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	mw := NewAuthMiddleware(tm)
	app.Get("/protected", mw.Handle, RequireScopes(requiredScopes...), func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.SendString(principal.Username)
	})
	return app
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	app := newProtectedApp(t, NewTokenManager("test-secret", 10), ScopeRead)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	app := newProtectedApp(t, NewTokenManager("test-secret", 10), ScopeRead)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 10)
	app := newProtectedApp(t, tm, ScopeRead)

	token, _, err := tm.GenerateToken("user-1", "jdoe", "user", []string{ScopeRead, ScopeWrite})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireScopesRejectsMissingScope(t *testing.T) {
	tm := NewTokenManager("test-secret", 10)
	app := newProtectedApp(t, tm, ScopeAdmin)

	token, _, err := tm.GenerateToken("user-1", "jdoe", "user", []string{ScopeRead, ScopeWrite})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
