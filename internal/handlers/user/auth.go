package user

import (
	"log"
	"net/http"
	"time"

	"maktaba_back_end/internal/cache"
	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/middleware"
	"maktaba_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ================== REGISTRATION & LOGIN ==================

// Register creates a local account and immediately establishes a session:
// there is no separate login step after a successful registration.
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// email already taken?
	var existingID gocql.UUID
	err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation error"})
		return
	}

	userID := gocql.UUID(uuid.New())
	now := time.Now()

	if err := database.GetPreparedInsertUser().Bind(
		userID, input.Email, hashed, input.Name, input.Phone, "user", "local", now).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation error"})
		return
	}
	if err := database.GetPreparedInsertUserByEmail().Bind(input.Email, userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account creation error"})
		return
	}

	log.Printf("🆕 Account created: %s", input.Email)

	resp, err := GenerateAuthTokens(userID.String(), input.Email, "user")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}
	resp.User = gin.H{
		"id":    userID.String(),
		"name":  input.Name,
		"email": input.Email,
		"phone": input.Phone,
		"role":  "user",
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a local account. The request names the surface it
// came from ("user" storefront login or "admin" back-office login); valid
// credentials whose stored role does not match are refused WITHOUT issuing
// tokens, so a customer credential is never accepted on the admin surface
// or vice versa. The actual role travels in the 403 body so the caller can
// surface the mismatch.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role == "" {
		input.Role = "user"
	}

	var userID gocql.UUID
	if err := database.GetPreparedGetUserByEmail().Bind(input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	var (
		email, password, name, phone, role, provider string
		createdAt                                    time.Time
	)
	err := database.GetPreparedGetUserByID().Bind(userID).Scan(
		&email, &password, &name, &phone, &role, &provider, &createdAt)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	if provider != "local" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account signs in with " + provider})
		return
	}

	valid, err := utils.VerifyPassword(input.Password, password)
	if err != nil || !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}

	if cache.IsUserBanned(userID.String()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account banned"})
		return
	}

	// Role gate: credentials alone are not enough for the wrong surface.
	if status, body := roleGate(role, input.Role); status != 0 {
		log.Printf("⚠️ Role mismatch at login for %s: has %q, asked %q", email, role, input.Role)
		c.JSON(status, body)
		return
	}

	resp, err := GenerateAuthTokens(userID.String(), email, role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}
	middleware.ClearLoginAttempts(input.Email)
	resp.User = gin.H{
		"id":    userID.String(),
		"name":  name,
		"email": email,
		"phone": phone,
		"role":  role,
	}

	log.Printf("✅ Login: %s (%s)", email, role)
	c.JSON(http.StatusOK, resp)
}

// roleGate decides whether valid credentials may open a session on the
// requested surface. A zero status allows it; otherwise the refusal
// carries the stored role so the caller can surface the mismatch. No
// token is ever minted on a refusal.
func roleGate(storedRole, requestedRole string) (int, gin.H) {
	if storedRole == requestedRole {
		return 0, nil
	}
	return http.StatusForbidden, gin.H{
		"error": "This account cannot sign in here",
		"role":  storedRole,
	}
}

// ================== SESSION ==================

// Me re-fetches the canonical user for the session. The client keeps a
// cached snapshot for instant rendering and reconciles against this.
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile changes name/phone on the signed-in account.
func UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
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

	now := time.Now()
	if err := session.Query("UPDATE users SET name = ?, phone = ?, updated_at = ? WHERE user_id = ?",
		input.Name, input.Phone, now, gocql.UUID(uid)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Profile update error"})
		return
	}

	cache.InvalidateUserCache(userID)

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// ================== GUEST SESSIONS ==================

// CreateGuestSession mints a guest id + token. The browser holds the token;
// the guest cart lives against the id and is never merged into a user
// account on login.
func CreateGuestSession(c *gin.Context) {
	guestID := "guest_" + uuid.NewString()

	token, err := utils.GenerateGuestToken(guestID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guest_id":   guestID,
		"token":      token,
		"expires_at": time.Now().Add(utils.GuestTokenTTL),
	})
}
