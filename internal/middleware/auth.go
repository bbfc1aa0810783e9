package middleware

import (
	"net/http"
	"strings"

	"seedy/internal/pkg"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// AuthMiddleware requires a valid bearer token and injects the caller's id.
// Missing tokens get 401, tokens that fail verification get 403.
func AuthMiddleware(tokens *pkg.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token not found"})
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token verification failed"})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Next()
	}
}

// extractToken accepts the Authorization header with or without the Bearer
// prefix, plus a token query parameter for websocket upgrades.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return authHeader
	}
	return c.Query("token")
}

// UserID reads the authenticated caller's id set by AuthMiddleware.
func UserID(c *gin.Context) uint64 {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0
	}
	id, _ := v.(uint64)
	return id
}
