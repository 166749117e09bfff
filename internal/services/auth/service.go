// Package auth issues and verifies the bearer tokens that gate every
// mutating podcast/episode operation.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/castkeep/publisher-api/internal/models"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// Claims carried by an issued token.
type Claims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`

	jwt.RegisteredClaims
}

// RequireRole fails with an authorization error when the token's role
// does not match. Distinct from authentication failure: the caller is
// known, just not allowed.
func (c *Claims) RequireRole(role string) error {
	if c.Role != role {
		return apperrors.Forbidden(fmt.Sprintf("requires %s role", role))
	}
	return nil
}

// Service signs and verifies tokens with a shared HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates an auth service. The secret must be non-empty.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for the user.
func (s *Service) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims. Any
// failure (malformed, bad signature, expired) is an authentication
// error, never an authorization one.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.Unauthorized("missing token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired token").WithCause(err)
	}
	if !token.Valid {
		return nil, apperrors.Unauthorized("invalid or expired token")
	}

	return claims, nil
}
