package middleware

import (
	"net/http"
	"strings"

	"maktaba_back_end/internal/cache"
	"maktaba_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and loads its claims into the
// Gin context. Revoked token ids (logout) and banned users are refused.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			return
		}

		if claims.Role == "guest" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "A full account is required"})
			c.Abort()
			return
		}

		if claims.TokenID != "" && cache.IsTokenBlacklisted(claims.TokenID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			c.Abort()
			return
		}

		if cache.IsUserBanned(claims.UserID) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account banned"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token_id", claims.TokenID)

		c.Next()
	}
}

// GuestAllowed accepts either a guest token or a full account token, for
// routes like checkout that serve both. Guest claims carry the guest id
// in user_id and the "guest" role.
func GuestAllowed() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c)
		if !ok {
			return
		}

		if claims.Role != "guest" {
			if claims.TokenID != "" && cache.IsTokenBlacklisted(claims.TokenID) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
				c.Abort()
				return
			}
			if cache.IsUserBanned(claims.UserID) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Account banned"})
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token_id", claims.TokenID)

		c.Next()
	}
}

func bearerClaims(c *gin.Context) (*utils.AccessClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		c.Abort()
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization format"})
		c.Abort()
		return nil, false
	}

	claims, err := utils.ParseAccessToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return nil, false
	}

	return claims, true
}
