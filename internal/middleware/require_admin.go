package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin verifies the authenticated user carries the "admin" role.
func RequireAdmin(c *gin.Context) {
	role, exists := c.Get("role")
	if !exists || role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Administrators only"})
		c.Abort()
		return
	}
	c.Next()
}
