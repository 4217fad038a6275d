package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/meharshop/storefront/internal/auth"
)

const tokenContextKey = "session_token"

// AdminHintMiddleware hides admin routes from non-admin sessions. The check
// reads the unverified token payload, so it only gates rendering; handlers
// behind it must still ask the shop API for the real authorization decision.
func AdminHintMiddleware(tokens *auth.Tokens, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokens.Load()
		if !auth.UIHint(token).IsAdminUI {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		c.Set(tokenContextKey, token)
		c.Next()
	}
}

// GetTokenFromContext retrieves the session token stored by AdminHintMiddleware
func GetTokenFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(tokenContextKey)
	if !ok {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}
