package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auto-bargain/internal/service"
)

// SessionTokenMiddleware validates the bearer token issued at session start
// and checks it belongs to the session in the path.
func SessionTokenMiddleware(tokens *service.SessionTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session tokens not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		if claims.SessionID != c.Param("id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "token does not match session"})
			c.Abort()
			return
		}

		c.Next()
	}
}
