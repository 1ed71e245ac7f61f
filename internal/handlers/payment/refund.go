package payment

import (
	"log"
	"math"
	"net/http"

	"maktaba_back_end/internal/models"
	"maktaba_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// RefundOrder issues a full gateway refund for a cancelled order and
// flips its payment status. Admin only; the order must already be
// cancelled so a refund never races fulfillment.
func RefundOrder(c *gin.Context) {
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
	if order.Status != models.OrderCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Only cancelled orders can be refunded", "status": order.Status})
		return
	}
	if order.PaymentStatus == "refunded" {
		c.JSON(http.StatusConflict, gin.H{"error": "This order is already refunded"})
		return
	}

	amountPaise := int(math.Round(float64(order.Total) * 100))
	if _, err := gatewayClient.Payment.Refund(order.PaymentID, amountPaise, nil, nil); err != nil {
		log.Printf("❌ Refund failed for %s: %v", order.OrderNumber, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway refused the refund"})
		return
	}

	if err := services.UpdatePaymentStatus(gocql.UUID(orderID), "refunded"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order update error"})
		return
	}

	log.Printf("💸 Refund issued for %s (₹%.2f)", order.OrderNumber, float64(order.Total))
	c.JSON(http.StatusOK, gin.H{"message": "Refund issued", "order_number": order.OrderNumber})
}
