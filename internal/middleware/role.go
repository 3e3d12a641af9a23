package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole gates a route group to a single role. Runs after
// AuthMiddleware, which sets userRole on the context.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("userRole") != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
