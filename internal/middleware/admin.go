package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminRequired gates reference data mutations and seeding. It must run
// after AuthMiddleware, which sets the admin flag from the token claims.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(ContextIsAdmin)
		if !exists || isAdmin != true {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "ADMIN_REQUIRED",
					"message": "Administrator privileges required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
