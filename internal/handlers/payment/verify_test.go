package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	database.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr
}

func postVerify(t *testing.T, userID string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.POST("/checkout/verify", func(c *gin.Context) {
		c.Set("user_id", userID)
		VerifyPayment(c)
	})

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/checkout/verify", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func verifyBody(gatewayOrderID string) gin.H {
	return gin.H{
		"gateway_order_id": gatewayOrderID,
		"payment_id":       "pay_123",
		"signature":        "deadbeef",
	}
}

func stashFor(t *testing.T, ownerID string) string {
	t.Helper()
	raw, err := json.Marshal(checkoutStash{
		OwnerID:      ownerID,
		UserID:       ownerID,
		CartKey:      "cart:" + ownerID,
		Items:        []models.OrderItem{{BookID: uuid.NewString(), Name: "Bahishti Zewar", Quantity: 1, Price: 149}},
		ContactName:  "Asif",
		ContactEmail: "asif@example.in",
		Total:        198,
	})
	if err != nil {
		t.Fatalf("marshal stash: %v", err)
	}
	return string(raw)
}

func TestVerifyRefusedWhileLockHeld(t *testing.T) {
	mr := setupRedis(t)
	mr.Set("verify_lock:ord_1", "1")

	w := postVerify(t, "u1", verifyBody("ord_1"))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 while a verify holds the lock, got %d", w.Code)
	}
	// the lock belongs to the in-flight verify; a refused caller must
	// not have released it
	if !mr.Exists("verify_lock:ord_1") {
		t.Error("refused verify released the other caller's lock")
	}
}

func TestVerifyExpiredCheckout(t *testing.T) {
	mr := setupRedis(t)

	w := postVerify(t, "u1", verifyBody("ord_2"))
	if w.Code != http.StatusGone {
		t.Fatalf("expected 410 for an expired checkout, got %d", w.Code)
	}
	if mr.Exists("verify_lock:ord_2") {
		t.Error("lock not released after the verify returned")
	}
}

func TestVerifyReplayNamesExistingOrder(t *testing.T) {
	mr := setupRedis(t)
	mr.Set("gateway_order:ord_3", "MKT-20260830-0042")
	// the stash survived a crash between the order write and cleanup;
	// the placed-order marker must still win
	mr.Set("checkout:ord_3", stashFor(t, "u1"))

	w := postVerify(t, "u1", verifyBody("ord_3"))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a replayed verify, got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["order_number"] != "MKT-20260830-0042" {
		t.Errorf("expected the existing order number, got %v", resp["order_number"])
	}
}

func TestVerifyRefusesForeignSession(t *testing.T) {
	mr := setupRedis(t)
	mr.Set("checkout:ord_4", stashFor(t, "someone-else"))

	w := postVerify(t, "u1", verifyBody("ord_4"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for another session's checkout, got %d", w.Code)
	}
}

func TestVerifyBadSignatureKeepsStash(t *testing.T) {
	t.Setenv("RAZORPAY_KEY_SECRET", "test-secret")
	mr := setupRedis(t)
	mr.Set("checkout:ord_5", stashFor(t, "u1"))

	w := postVerify(t, "u1", verifyBody("ord_5"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a bad signature, got %d", w.Code)
	}
	if !mr.Exists("checkout:ord_5") {
		t.Error("stash consumed on a failed signature; retry is impossible")
	}
	if mr.Exists("verify_lock:ord_5") {
		t.Error("lock not released after the failed verify")
	}
}

func TestOrderFeedPublishesOnSharedChannel(t *testing.T) {
	setupRedis(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sub := database.Redis.Subscribe(ctx, OrderFeedChannel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	order := models.Order{
		ID:          gocql.UUID(uuid.New()),
		OrderNumber: "MKT-20260830-0007",
		Total:       models.Price(198),
		CreatedAt:   time.Now(),
	}
	publishOrderPlaced(order)

	select {
	case msg := <-sub.Channel():
		var payload map[string]interface{}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			t.Fatalf("bad feed payload: %v", err)
		}
		if payload["order_number"] != order.OrderNumber {
			t.Errorf("expected %s on the feed, got %v", order.OrderNumber, payload["order_number"])
		}
	case <-ctx.Done():
		t.Fatal("no order event arrived on the feed channel")
	}
}
