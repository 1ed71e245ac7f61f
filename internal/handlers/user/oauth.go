package user

import (
	"log"
	"net/http"
	"os"
	"time"

	"maktaba_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

// ================== GOOGLE OAUTH ==================

// InitOAuth registers the Google provider. Called once at boot.
func InitOAuth() {
	store := sessions.NewCookieStore([]byte(os.Getenv("SESSION_SECRET")))
	store.MaxAge(int((10 * time.Minute).Seconds()))
	store.Options.HttpOnly = true
	store.Options.Secure = os.Getenv("SESSION_SECURE") == "true"
	gothic.Store = store

	goth.UseProviders(
		google.New(
			os.Getenv("GOOGLE_CLIENT_ID"),
			os.Getenv("GOOGLE_CLIENT_SECRET"),
			os.Getenv("GOOGLE_REDIRECT_URL"),
			"email", "profile",
		),
	)
	log.Println("✅ Google OAuth provider registered")
}

// BeginGoogleAuth redirects the browser to Google's consent screen.
func BeginGoogleAuth(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", "google")
	c.Request.URL.RawQuery = q.Encode()
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// GoogleCallback completes the handshake, provisions the account on first
// sign-in, and redirects back to the storefront with a token pair.
func GoogleCallback(c *gin.Context) {
	q := c.Request.URL.Query()
	q.Set("provider", "google")
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ OAuth callback error: %v", err)
		c.Redirect(http.StatusTemporaryRedirect, frontendURL()+"/login?error=oauth")
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, frontendURL()+"/login?error=server")
		return
	}

	var (
		userID gocql.UUID
		role   = "user"
	)
	err = session.Query("SELECT user_id FROM users_by_email WHERE email = ?", gothUser.Email).Scan(&userID)
	if err != nil {
		// first sign-in: provision the account
		userID = gocql.UUID(uuid.New())
		now := time.Now()
		name := gothUser.Name
		if name == "" {
			name = gothUser.Email
		}
		if err := session.Query(`INSERT INTO users (user_id, email, password, name, phone, role, provider, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, gothUser.Email, "", name, "", "user", "google", now).Exec(); err != nil {
			c.Redirect(http.StatusTemporaryRedirect, frontendURL()+"/login?error=server")
			return
		}
		if err := session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)",
			gothUser.Email, userID).Exec(); err != nil {
			c.Redirect(http.StatusTemporaryRedirect, frontendURL()+"/login?error=server")
			return
		}
		log.Printf("🆕 Account provisioned via Google: %s", gothUser.Email)
	} else {
		var provider string
		if err := session.Query("SELECT role, provider FROM users WHERE user_id = ?", userID).
			Scan(&role, &provider); err == nil && provider == "local" {
			c.Redirect(http.StatusTemporaryRedirect, frontendURL()+"/login?error=local_account")
			return
		}
	}

	resp, err := GenerateAuthTokens(userID.String(), gothUser.Email, role)
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, frontendURL()+"/login?error=server")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect,
		frontendURL()+"/auth/callback?access_token="+resp.AccessToken+"&refresh_token="+resp.RefreshToken)
}

func frontendURL() string {
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		return v
	}
	return "http://localhost:5173"
}
