package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"maktaba_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	LoginMaxAttempts          = 5
	RegisterMaxAttempts       = 3
	ForgotPasswordMaxAttempts = 3

	LoginCooldown          = 15 * time.Minute
	RegisterCooldown       = 30 * time.Minute
	ForgotPasswordCooldown = 10 * time.Minute
)

// emailRateLimit limits attempts per email with a Redis cooldown once the
// budget is exhausted. Counting is per-email rather than per-IP so shared
// NATs don't lock whole campuses out.
func emailRateLimit(prefix string, maxAttempts int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			c.Next()
			return
		}

		// restore the body for the handler
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := context.Background()

		cooldownKey := prefix + "_cooldown:" + input.Email
		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Too many attempts. Try again in %d minutes", int(ttl.Minutes())+1),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		key := attemptsKey(prefix, input.Email)
		attempts, _ := database.Redis.Incr(ctx, key).Result()
		database.Redis.Expire(ctx, key, cooldown)

		if attempts > int64(maxAttempts) {
			database.Redis.Set(ctx, cooldownKey, "1", cooldown)
			database.Redis.Del(ctx, key)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Too many attempts. Try again in %d minutes", int(cooldown.Minutes())),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func attemptsKey(prefix, email string) string {
	return prefix + "_attempts:" + email
}

// ClearLoginAttempts drops the attempt count after a successful sign-in,
// so only consecutive failures ever reach the lockout.
func ClearLoginAttempts(email string) {
	database.Redis.Del(context.Background(), attemptsKey("login", email))
}

func LoginRateLimit() gin.HandlerFunc {
	return emailRateLimit("login", LoginMaxAttempts, LoginCooldown)
}

func RegisterRateLimit() gin.HandlerFunc {
	return emailRateLimit("register", RegisterMaxAttempts, RegisterCooldown)
}

func ForgotPasswordRateLimit() gin.HandlerFunc {
	return emailRateLimit("forgot", ForgotPasswordMaxAttempts, ForgotPasswordCooldown)
}
