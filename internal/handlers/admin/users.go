package admin

import (
	"log"
	"net/http"
	"time"

	"maktaba_back_end/internal/cache"
	"maktaba_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// ================== USERS (back office) ==================

// ListUsers returns all accounts with their ban state.
func ListUsers(c *gin.Context) {
	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query("SELECT user_id, email, name, phone, role, provider, created_at FROM users").Iter()

	users := []gin.H{}
	var (
		id                                  gocql.UUID
		email, name, phone, role, provider string
		createdAt                           time.Time
	)
	for iter.Scan(&id, &email, &name, &phone, &role, &provider, &createdAt) {
		users = append(users, gin.H{
			"id":         id.String(),
			"email":      email,
			"name":       name,
			"phone":      phone,
			"role":       role,
			"provider":   provider,
			"created_at": createdAt,
			"banned":     cache.IsUserBanned(id.String()),
		})
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User read error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// BanUser blocks an account. Its refresh token dies immediately; the
// access token is refused at the middleware until it expires.
func BanUser(c *gin.Context) {
	userID := c.Param("id")
	if userID == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot ban yourself"})
		return
	}

	u, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if u.Role == "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin accounts cannot be banned"})
		return
	}

	if err := cache.BanUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ban error"})
		return
	}
	cache.DeleteRefreshToken(userID)

	log.Printf("🚫 User banned: %s", u.Email)
	c.JSON(http.StatusOK, gin.H{"message": "User banned"})
}

// UnbanUser lifts a ban.
func UnbanUser(c *gin.Context) {
	userID := c.Param("id")

	if err := cache.UnbanUser(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unban error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unbanned"})
}
