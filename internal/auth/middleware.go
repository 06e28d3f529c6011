package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const principalKey = "auth_principal"

// AuthMiddleware validates bearer tokens. Authorization is decided from
// the token's own scope claims; no repository lookup happens per request.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	tokenData, err := m.tokens.VerifyToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("Could not validate credentials")
	}

	c.Locals(principalKey, tokenData)
	return c.Next()
}

// RequireScopes gates a route on the caller's token scopes. Every
// listed scope must be present.
func RequireScopes(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Could not validate credentials")
		}
		if !HasScopes(scopes, principal.Scopes) {
			return apperrors.NewForbidden("Not enough permissions")
		}
		return c.Next()
	}
}

// PrincipalFromContext retrieves the authenticated token data.
func PrincipalFromContext(c *fiber.Ctx) (*TokenData, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*TokenData)
	return principal, ok
}
