package user

import (
	"net/http"

	"maktaba_back_end/internal/services"
	"maktaba_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ================== MY ORDERS ==================

// MyOrders lists the signed-in account's orders, newest first.
func MyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	orders, err := services.ListOrdersByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order read error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// MyOrderDetail returns one of the account's orders. Ownership is
// enforced: another account's order id is indistinguishable from a
// missing one.
func MyOrderDetail(c *gin.Context) {
	userID := c.GetString("user_id")

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := services.GetOrder(gocql.UUID(orderID))
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// DownloadInvoice renders the order's invoice as a PDF.
func DownloadInvoice(c *gin.Context) {
	userID := c.GetString("user_id")

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, err := services.GetOrder(gocql.UUID(orderID))
	if err != nil || order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	pdf, err := utils.GenerateInvoicePDF(*order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invoice generation error"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=invoice-"+order.OrderNumber+".pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
