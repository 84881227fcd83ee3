package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// usernameKey is the gin context key holding the authenticated username.
const usernameKey = "auth.username"

// Middleware returns gin middleware that requires a valid Bearer token and
// stores the authenticated username in the request context.
func Middleware(tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		username, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(usernameKey, username)
		c.Next()
	}
}

// Username returns the authenticated username set by Middleware, or an empty
// string on unauthenticated requests.
func Username(c *gin.Context) string {
	return c.GetString(usernameKey)
}
