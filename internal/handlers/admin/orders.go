package admin

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"maktaba_back_end/internal/models"
	"maktaba_back_end/internal/services"
	"maktaba_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ================== ORDERS (back office) ==================

// ListOrders returns orders for the back office, optionally filtered by
// status and a ?q= search over order number and contact email, with
// page/limit pagination.
func ListOrders(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidOrderStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	orders, err := services.ListAllOrders(status, page*limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order read error"})
		return
	}

	if q != "" {
		filtered := orders[:0]
		for _, o := range orders {
			if strings.Contains(strings.ToLower(o.OrderNumber), q) ||
				strings.Contains(strings.ToLower(o.ContactEmail), q) {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	total := len(orders)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders[start:end],
		"page":   page,
		"limit":  limit,
		"total":  total,
	})
}

// GetOrder returns one order with full detail, asker contact included.
func GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := services.GetOrder(gocql.UUID(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// LookupOrderByNumber resolves the human-facing order number.
func LookupOrderByNumber(c *gin.Context) {
	order, err := services.GetOrderByNumber(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order through its lifecycle. Illegal
// transitions are refused with the current status in the body. Shipping
// triggers the tracking email.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	order, err := services.GetOrder(gocql.UUID(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if !models.CanTransitionOrder(order.Status, input.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Cannot move from " + order.Status + " to " + input.Status,
			"status": order.Status,
		})
		return
	}

	if err := services.UpdateOrderStatus(gocql.UUID(orderID), input.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order update error"})
		return
	}

	if input.Status == models.OrderShipped {
		go notifyShipped(*order)
	}
	if input.Status == models.OrderDelivered {
		now := time.Now()
		f := order.Fulfillment
		f.ActualDelivery = &now
		services.UpdateFulfillment(gocql.UUID(orderID), f)
	}

	log.Printf("📦 Order %s: %s → %s", order.OrderNumber, order.Status, input.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": input.Status})
}

// UpdateFulfillment replaces the shipping metadata on an order.
func UpdateFulfillment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input models.Fulfillment
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := services.GetOrder(gocql.UUID(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := services.UpdateFulfillment(gocql.UUID(orderID), input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order update error"})
		return
	}

	log.Printf("🚚 Fulfillment updated on %s (%s %s)", order.OrderNumber, input.Carrier, input.TrackingNumber)
	c.JSON(http.StatusOK, gin.H{"message": "Fulfillment updated"})
}

func notifyShipped(order models.Order) {
	html := "<p>Assalamu alaikum " + order.ContactName + ",</p>" +
		"<p>Your order <strong>" + order.OrderNumber + "</strong> has shipped."
	if order.Fulfillment.TrackingNumber != "" {
		html += " Tracking number: <strong>" + order.Fulfillment.TrackingNumber + "</strong>"
		if order.Fulfillment.Carrier != "" {
			html += " (" + order.Fulfillment.Carrier + ")"
		}
		html += "."
	}
	html += "</p><p>— Maktaba Publishers</p>"

	if err := utils.SendEmail(order.ContactEmail, "Your Maktaba order has shipped", html, nil); err != nil {
		log.Printf("❌ Shipping email for %s failed: %v", order.OrderNumber, err)
	}
}
