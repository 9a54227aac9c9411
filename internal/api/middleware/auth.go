package middleware

import (
	"strings"

	"github.com/cloudkitchen/backend/internal/services"
	"github.com/cloudkitchen/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// ContextClaims is the gin context key holding verified *services.TokenClaims.
const ContextClaims = "token_claims"

// Auth verifies a bearer token when the Authorization header is present and
// stores the claims on the context. A request without the header passes
// through unauthenticated; handlers that need identity check for the claims
// themselves. This keeps dual-mode routes (public per-service review listing
// vs. token-gated reviewer listing) on a single path.
func Auth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.SendUnauthorized(c, "Bearer token required")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			utils.SendUnauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims stored by Auth, if any.
func ClaimsFrom(c *gin.Context) (*services.TokenClaims, bool) {
	value, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*services.TokenClaims)
	return claims, ok
}
