package user

import (
	"log"
	"net/http"

	"maktaba_back_end/internal/cache"
	"maktaba_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthResponse is the token pair handed out at register/login/refresh.
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         gin.H  `json:"user,omitempty"`
}

// GenerateAuthTokens mints an access/refresh pair and stores the refresh
// token in Redis so it can be rotated and revoked.
func GenerateAuthTokens(userID, email, role string) (*AuthResponse, error) {
	accessToken, _, err := utils.GenerateAccessToken(userID, email, role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := cache.StoreRefreshToken(userID, refreshToken, utils.RefreshTokenTTL); err != nil {
		return nil, err
	}

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(utils.AccessTokenTTL.Seconds()),
	}, nil
}

// Refresh exchanges a valid refresh token for a new pair. Rotation:
// the presented token is compared against the stored one and replaced.
func Refresh(c *gin.Context) {
	var input struct {
		UserID       string `json:"user_id" binding:"required"`
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := cache.GetRefreshToken(input.UserID)
	if err != nil || stored != input.RefreshToken {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	if cache.IsUserBanned(input.UserID) {
		cache.DeleteRefreshToken(input.UserID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account banned"})
		return
	}

	u, err := cache.GetUserFromCache(input.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return
	}

	resp, err := GenerateAuthTokens(u.ID, u.Email, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout revokes the refresh token and blacklists the current access token
// for the remainder of its lifetime.
func Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	tokenID := c.GetString("token_id")

	if userID != "" {
		cache.DeleteRefreshToken(userID)
	}
	if tokenID != "" {
		authz := c.GetHeader("Authorization")
		if len(authz) > 7 {
			if claims, err := utils.ParseAccessToken(authz[7:]); err == nil {
				if ttl := utils.GetTokenExpirationDuration(claims); ttl > 0 {
					cache.BlacklistToken(tokenID, ttl)
				}
			}
		}
	}

	log.Printf("🔌 Logout: %s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
