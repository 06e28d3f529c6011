package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, malformed payload, missing claims, or expiry.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and verifies signed access tokens. Scopes are
// baked in at issuance from the role mapping; verification never reads
// the database.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 10
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID   string   `json:"id"`
	Username string   `json:"username"`
	Role     string   `json:"role"`
	Scopes   []string `json:"scopes"`
	jwt.RegisteredClaims
}

// TokenData is the verified identity carried by a token.
type TokenData struct {
	ID       string
	Username string
	Role     string
	Scopes   []string
}

// GenerateToken builds and signs a JWT for the given identity.
func (tm *TokenManager) GenerateToken(userID, username, role string, scopes []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	if scopes == nil {
		scopes = []string{}
	}
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Scopes:   scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// VerifyToken validates the token and extracts its identity claims.
// Expiry is enforced here, not by callers.
func (tm *TokenManager) VerifyToken(tokenStr string) (*TokenData, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Username == "" || claims.UserID == "" || claims.Role == "" {
		return nil, ErrInvalidToken
	}

	scopes := claims.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	return &TokenData{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		Scopes:   scopes,
	}, nil
}
