package payment

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"maktaba_back_end/internal/cache"
	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"
	"maktaba_back_end/internal/services"
	"maktaba_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// verifyLockTTL bounds how long a crashed verify can block a retry.
const verifyLockTTL = 2 * time.Minute

// OrderFeedChannel carries freshly placed orders to the back-office feed.
const OrderFeedChannel = "orders:new"

// VerifyPayment is the second leg of the handshake. The gateway's
// signature over (order id, payment id) proves the payment happened;
// only then does the order exist. The whole leg is one-shot: a lock
// and the stash's consumption make replays detectable.
func VerifyPayment(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		GatewayOrderID string `json:"gateway_order_id" binding:"required"`
		PaymentID      string `json:"payment_id" binding:"required"`
		Signature      string `json:"signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// one verify at a time per gateway order
	lockKey := "verify_lock:" + input.GatewayOrderID
	acquired, err := cache.AcquireLock(lockKey, verifyLockTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification error"})
		return
	}
	if !acquired {
		c.JSON(http.StatusConflict, gin.H{"error": "This payment is already being verified"})
		return
	}
	defer cache.ReleaseLock(lockKey)

	// A completed verify leaves a marker behind. Checked before the
	// stash: a crash between the order write and the stash cleanup must
	// not let a replay materialize a second order from the leftover stash.
	if number := placedOrderNumber(input.GatewayOrderID); number != "" {
		c.JSON(http.StatusConflict, gin.H{
			"error":        "This payment has already been verified",
			"order_number": number,
		})
		return
	}

	raw, err := cache.GetCache(stashKey(input.GatewayOrderID))
	if err != nil || raw == "" {
		c.JSON(http.StatusGone, gin.H{"error": "This checkout has expired, please start again"})
		return
	}

	var stash checkoutStash
	if err := json.Unmarshal([]byte(raw), &stash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification error"})
		return
	}
	if stash.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This checkout belongs to another session"})
		return
	}

	if !utils.VerifyGatewaySignature(input.GatewayOrderID, input.PaymentID, input.Signature,
		os.Getenv("RAZORPAY_KEY_SECRET")) {
		log.Printf("⚠️ Invalid payment signature for %s", input.GatewayOrderID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
		return
	}

	order := &models.Order{
		ID:            gocql.UUID(uuid.New()),
		OrderNumber:   services.NewOrderNumber(),
		UserID:        stash.UserID,
		GatewayOrder:  input.GatewayOrderID,
		PaymentID:     input.PaymentID,
		Items:         stash.Items,
		ContactName:   stash.ContactName,
		ContactEmail:  stash.ContactEmail,
		ContactPhone:  stash.ContactPhone,
		Shipping:      stash.Shipping,
		ShippingFee:   models.Price(stash.ShippingFee),
		Total:         models.Price(stash.Total),
		Status:        models.OrderPending,
		PaymentStatus: "paid",
		CreatedAt:     time.Now(),
	}

	if err := services.SaveOrder(order); err != nil {
		log.Printf("❌ Order save failed after payment %s: %v", input.PaymentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order creation error"})
		return
	}
	rememberGatewayOrder(input.GatewayOrderID, order.OrderNumber)

	decrementStock(order.Items)

	// the checkout is consumed; the cart is spent
	cache.DeleteCache(stashKey(input.GatewayOrderID))
	cache.DeleteCache(stash.CartKey)

	go sendOrderConfirmation(*order)
	go publishOrderPlaced(*order)

	log.Printf("✅ Order placed: %s (payment %s)", order.OrderNumber, input.PaymentID)
	c.JSON(http.StatusCreated, gin.H{
		"order_number": order.OrderNumber,
		"order_id":     order.ID.String(),
		"total":        order.Total,
		"status":       order.Status,
	})
}

// rememberGatewayOrder marks the gateway order as placed so a replayed
// verify can name the existing order.
func rememberGatewayOrder(gatewayOrderID, orderNumber string) {
	cache.SetCache("gateway_order:"+gatewayOrderID, orderNumber, 7*24*time.Hour)
}

// placedOrderNumber returns the order number a prior verify placed for
// this gateway order, or "".
func placedOrderNumber(gatewayOrderID string) string {
	number, err := cache.GetCache("gateway_order:" + gatewayOrderID)
	if err != nil {
		return ""
	}
	return number
}

func decrementStock(items []models.OrderItem) {
	session, err := database.GetBooksSession()
	if err != nil {
		log.Printf("⚠️ Stock decrement skipped: %v", err)
		return
	}
	for _, item := range items {
		bid, err := uuid.Parse(item.BookID)
		if err != nil {
			continue
		}
		var stock int
		if err := session.Query("SELECT stock FROM books WHERE book_id = ?",
			gocql.UUID(bid)).Scan(&stock); err != nil {
			continue
		}
		newStock := stock - item.Quantity
		if newStock < 0 {
			newStock = 0
		}
		if err := session.Query("UPDATE books SET stock = ? WHERE book_id = ?",
			newStock, gocql.UUID(bid)).Exec(); err != nil {
			log.Printf("⚠️ Stock update failed for %s: %v", item.BookID, err)
		}
	}
}

func sendOrderConfirmation(order models.Order) {
	var attachment []byte
	if pdf, err := utils.GenerateInvoicePDF(order); err == nil {
		attachment = pdf
	} else {
		log.Printf("⚠️ Invoice PDF for %s failed, sending email without it: %v", order.OrderNumber, err)
	}

	if err := utils.SendEmail(order.ContactEmail,
		"Your Maktaba order "+order.OrderNumber,
		utils.GenerateOrderConfirmationHTML(order), attachment); err != nil {
		log.Printf("❌ Confirmation email for %s failed: %v", order.OrderNumber, err)
	} else {
		log.Printf("📧 Confirmation sent for %s", order.OrderNumber)
	}
}

func publishOrderPlaced(order models.Order) {
	payload, err := json.Marshal(gin.H{
		"order_number": order.OrderNumber,
		"order_id":     order.ID.String(),
		"total":        order.Total,
		"items":        len(order.Items),
		"created_at":   order.CreatedAt,
	})
	if err != nil {
		return
	}
	if err := database.Redis.Publish(context.Background(), OrderFeedChannel, payload).Err(); err != nil {
		log.Printf("⚠️ Order feed publish failed: %v", err)
	}
}
