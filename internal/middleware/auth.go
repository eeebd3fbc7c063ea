package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"msinnov-backend/internal/auth"
)

// AdminAuth gates the admin surface. Either the shared x-admin-key header
// or a Bearer token minted by the admin login endpoint is accepted.
func AdminAuth(adminKey, adminKeyHash, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader("x-admin-key"); key != "" {
			if auth.CheckAdminKey(key, adminKey, adminKeyHash) {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		// token from Authorization: Bearer <jwt>
		raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if raw != "" && jwtSecret != "" {
			if _, err := auth.ParseToken(raw, jwtSecret); err == nil {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
}
