package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"maktaba_back_end/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func limiterRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := gin.New()
	r.POST("/login", LoginRateLimit(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func attempt(r *gin.Engine, email string) int {
	body := []byte(`{"email": "` + email + `", "password": "wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestLoginRateLimitLocksOutAfterBudget(t *testing.T) {
	r := limiterRouter(t)

	for i := 0; i < LoginMaxAttempts; i++ {
		if code := attempt(r, "asif@example.in"); code != http.StatusOK {
			t.Fatalf("attempt %d refused with %d", i+1, code)
		}
	}
	if code := attempt(r, "asif@example.in"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 past the attempt budget, got %d", code)
	}
	// other emails are unaffected
	if code := attempt(r, "zainab@example.in"); code != http.StatusOK {
		t.Errorf("unrelated email locked out with %d", code)
	}
}

func TestClearLoginAttemptsRestartsBudget(t *testing.T) {
	r := limiterRouter(t)

	for i := 0; i < LoginMaxAttempts; i++ {
		if code := attempt(r, "asif@example.in"); code != http.StatusOK {
			t.Fatalf("attempt %d refused with %d", i+1, code)
		}
	}

	// a successful sign-in resets the count; the next attempt in the
	// same window must pass instead of tripping the lockout
	ClearLoginAttempts("asif@example.in")
	if code := attempt(r, "asif@example.in"); code != http.StatusOK {
		t.Fatalf("expected a fresh budget after reset, got %d", code)
	}
}
