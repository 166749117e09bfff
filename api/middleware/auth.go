package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/types"
	"github.com/castkeep/publisher-api/internal/services/auth"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

// claimsKey is the context key the auth middleware stores claims under.
const claimsKey = "claims"

// RequireAuth verifies the bearer token and stores its claims in the
// context. A missing or invalid token ends the request with 401.
func RequireAuth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			types.RespondError(c, apperrors.Unauthorized("authorization header required"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			types.RespondError(c, apperrors.Unauthorized("invalid authorization header format"))
			c.Abort()
			return
		}

		claims, err := authService.Verify(parts[1])
		if err != nil {
			types.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims set by RequireAuth, or nil on
// routes that ran without it. Services treat nil as unauthenticated.
func ClaimsFrom(c *gin.Context) *auth.Claims {
	if value, exists := c.Get(claimsKey); exists {
		if claims, ok := value.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
