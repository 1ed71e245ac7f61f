package payment

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"maktaba_back_end/internal/cache"
	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/handlers/user"
	"maktaba_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// checkoutTTL bounds how long a created gateway order stays claimable.
const checkoutTTL = 45 * time.Minute

var gatewayClient *razorpay.Client

// InitGateway builds the payment gateway client. Called once at boot.
func InitGateway() {
	gatewayClient = razorpay.NewClient(
		os.Getenv("RAZORPAY_KEY_ID"),
		os.Getenv("RAZORPAY_KEY_SECRET"),
	)
	log.Println("💳 Payment gateway client initialized")
}

// checkoutStash is everything verify needs to finalize the order. It is
// parked in Redis against the gateway order id between the two legs of
// the handshake. OwnerID is the account id or the guest id; UserID is
// set only for account purchases (guest orders carry no account ref).
type checkoutStash struct {
	OwnerID      string             `json:"owner_id"`
	UserID       string             `json:"user_id,omitempty"`
	CartKey      string             `json:"cart_key"`
	Items        []models.OrderItem `json:"items"`
	ContactName  string             `json:"contact_name"`
	ContactEmail string             `json:"contact_email"`
	ContactPhone string             `json:"contact_phone"`
	Shipping     models.Address     `json:"shipping_address"`
	ShippingFee  float64            `json:"shipping_fee"`
	Total        float64            `json:"total"`
}

func stashKey(gatewayOrderID string) string { return "checkout:" + gatewayOrderID }

// checkoutReceipt builds the receipt ref sent with the gateway order.
// Razorpay caps the receipt field at 40 characters, so owner ids longer
// than the budget are truncated; the stash, not the receipt, is what
// ties the gateway order back to its owner.
func checkoutReceipt(ownerID string) string {
	const maxReceiptLen = 40
	receipt := "maktaba_" + ownerID
	if len(receipt) > maxReceiptLen {
		receipt = receipt[:maxReceiptLen]
	}
	return receipt
}

// CreateCheckout validates the cart against the live catalog, prices the
// order server-side, creates a gateway order and parks the pending order
// in Redis. The client gets back only what the payment widget needs.
//
// Accounts checkout against a saved address; guests send the address and
// contact details inline.
func CreateCheckout(c *gin.Context) {
	ownerID := c.GetString("user_id")
	isGuest := c.GetString("role") == "guest"

	var input struct {
		ContactName  string          `json:"contact_name" binding:"required"`
		ContactEmail string          `json:"contact_email"`
		ContactPhone string          `json:"contact_phone"`
		AddressID    string          `json:"address_id"`
		Address      *models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		cartKey  string
		email    string
		shipping *models.Address
	)
	if isGuest {
		cartKey = "guestcart:" + ownerID
		email = input.ContactEmail
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Contact email is required"})
			return
		}
		if input.Address == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is required"})
			return
		}
		if err := input.Address.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		shipping = input.Address
	} else {
		cartKey = "cart:" + ownerID
		email = c.GetString("email")
		if input.AddressID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Address id is required"})
			return
		}
		saved, err := loadShippingAddress(ownerID, input.AddressID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address not found"})
			return
		}
		shipping = saved
	}

	items, err := user.LoadCart(cartKey)
	if err != nil || len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	// Reprice every line from the catalog; the cart snapshot might be
	// stale and the client is never the price authority.
	booksSession, err := database.GetBooksSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	var subtotal float64
	var totalUnits int
	for _, item := range items {
		bid, err := uuid.Parse(item.BookID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book in cart"})
			return
		}

		var (
			name     string
			price    float64
			stock    int
			isActive bool
		)
		if err := booksSession.Query("SELECT name, price, stock, is_active FROM books WHERE book_id = ?",
			gocql.UUID(bid)).Scan(&name, &price, &stock, &isActive); err != nil || !isActive {
			c.JSON(http.StatusConflict, gin.H{"error": "A book in your cart is no longer available", "book_id": item.BookID})
			return
		}
		if stock < item.Quantity {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Not enough stock for " + name,
				"book_id":   item.BookID,
				"available": stock,
			})
			return
		}

		orderItems = append(orderItems, models.OrderItem{
			BookID:   item.BookID,
			Name:     name,
			Language: item.Language,
			Quantity: item.Quantity,
			Price:    models.Price(price),
		})
		subtotal += price * float64(item.Quantity)
		totalUnits += item.Quantity
	}

	shippingFee := models.ShippingFee(totalUnits)
	total := subtotal + shippingFee
	amountPaise := int64(math.Round(total * 100))

	gatewayOrder, err := gatewayClient.Order.Create(map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  checkoutReceipt(ownerID),
	}, nil)
	if err != nil {
		log.Printf("❌ Gateway order creation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
		return
	}

	gatewayOrderID, _ := gatewayOrder["id"].(string)
	if gatewayOrderID == "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
		return
	}

	stash := checkoutStash{
		OwnerID:      ownerID,
		CartKey:      cartKey,
		Items:        orderItems,
		ContactName:  input.ContactName,
		ContactEmail: email,
		ContactPhone: input.ContactPhone,
		Shipping:     *shipping,
		ShippingFee:  shippingFee,
		Total:        total,
	}
	if !isGuest {
		stash.UserID = ownerID
	}
	raw, err := json.Marshal(stash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout error"})
		return
	}
	if err := cache.SetCache(stashKey(gatewayOrderID), string(raw), checkoutTTL); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout error"})
		return
	}

	log.Printf("🛒 Checkout opened: %s (₹%.2f, %d units)", gatewayOrderID, total, totalUnits)
	c.JSON(http.StatusOK, gin.H{
		"gateway_order_id": gatewayOrderID,
		"amount":           amountPaise,
		"currency":         "INR",
		"key_id":           os.Getenv("RAZORPAY_KEY_ID"),
		"shipping_fee":     shippingFee,
		"total":            total,
	})
}

func loadShippingAddress(userID, addressID string) (*models.Address, error) {
	aid, err := uuid.Parse(addressID)
	if err != nil {
		return nil, err
	}
	session, err := database.GetUsersSession()
	if err != nil {
		return nil, err
	}

	var a models.Address
	if err := session.Query(`SELECT address_id, line1, line2, landmark, city, state, pincode, type, is_default
		FROM addresses WHERE user_id = ? AND address_id = ?`, userID, gocql.UUID(aid)).Scan(
		&a.ID, &a.Line1, &a.Line2, &a.Landmark, &a.City, &a.State, &a.Pincode, &a.Type, &a.IsDefault); err != nil {
		return nil, err
	}
	a.UserID = userID
	return &a, nil
}
