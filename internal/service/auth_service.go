package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AuthService verifies credentials and issues scope-bearing tokens.
// Scopes come from the configured role mapping at issuance time; they
// are not re-derived from user state on later requests.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	roleScopes map[string][]string
}

// LoginResult is returned to a successfully authenticated caller.
type LoginResult struct {
	AccessToken string
	UserID      string
	Role        string
	Scopes      []string
	ExpiresAt   time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		roleScopes: cfg.Auth.RoleScopes,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates a username/password pair and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, apperrors.NewInternalError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Incorrect password")
	}

	scopes := auth.ScopesForRole(s.roleScopes, user.Role)
	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Username, user.Role, scopes)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	return &LoginResult{
		AccessToken: token,
		UserID:      user.ID,
		Role:        user.Role,
		Scopes:      scopes,
		ExpiresAt:   expiresAt,
	}, nil
}
