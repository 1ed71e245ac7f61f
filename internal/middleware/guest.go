package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GuestRequired validates a guest token and exposes the guest id. The guest
// cart lives only against this id — it is never attached to a user account.
func GuestRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			return
		}

		if claims.Role != "guest" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Guest token required"})
			c.Abort()
			return
		}

		c.Set("guest_id", claims.UserID)
		c.Next()
	}
}

// GuestID returns the guest id placed by GuestRequired, or "".
func GuestID(c *gin.Context) string {
	return c.GetString("guest_id")
}
