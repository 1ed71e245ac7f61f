package user

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"time"

	"maktaba_back_end/internal/cache"
	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const resetTokenTTL = 30 * time.Minute

// ================== PASSWORD MANAGEMENT ==================

// ChangePassword lets a signed-in local account rotate its password.
func ChangePassword(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var stored, provider string
	if err := session.Query("SELECT password, provider FROM users WHERE user_id = ?",
		gocql.UUID(uid)).Scan(&stored, &provider); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if provider != "local" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This account signs in with " + provider})
		return
	}

	valid, err := utils.VerifyPassword(input.CurrentPassword, stored)
	if err != nil || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password update error"})
		return
	}
	if err := session.Query("UPDATE users SET password = ?, updated_at = ? WHERE user_id = ?",
		hashed, time.Now(), gocql.UUID(uid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password update error"})
		return
	}

	// any other sessions must re-authenticate
	cache.DeleteRefreshToken(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// ForgotPassword emails a one-shot reset link. The response is identical
// whether or not the address exists, to avoid account enumeration.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	neutral := gin.H{"message": "If an account exists for this address, a reset email has been sent"}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	var userID gocql.UUID
	if err := session.Query("SELECT user_id FROM users_by_email WHERE email = ?", input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusOK, neutral)
		return
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset token error"})
		return
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	if err := cache.SetCache("pwreset:"+token, userID.String(), resetTokenTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset token error"})
		return
	}

	resetURL := frontendURL() + "/reset-password?token=" + token
	go func() {
		if err := utils.SendEmail(input.Email, "Reset your Maktaba password",
			utils.GeneratePasswordResetHTML(resetURL), nil); err != nil {
			log.Printf("❌ Reset email to %s failed: %v", input.Email, err)
		}
	}()

	c.JSON(http.StatusOK, neutral)
}

// ResetPassword consumes the emailed token and sets the new password.
func ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := cache.GetCache("pwreset:" + input.Token)
	if err != nil || userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset token error"})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password update error"})
		return
	}
	if err := session.Query("UPDATE users SET password = ?, updated_at = ? WHERE user_id = ?",
		hashed, time.Now(), gocql.UUID(uid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password update error"})
		return
	}

	// one shot: burn the token and revoke existing sessions
	cache.DeleteCache("pwreset:" + input.Token)
	cache.DeleteRefreshToken(userID)

	log.Printf("🔑 Password reset completed for user %s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Password reset"})
}
