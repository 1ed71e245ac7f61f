package payment

import (
	"net/http"
	"strconv"

	"maktaba_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// QuoteShipping returns the shipping fee for a given unit count so the
// storefront can show the same number checkout will charge. Pricing has
// exactly one implementation, shared with checkout.
func QuoteShipping(c *gin.Context) {
	units, err := strconv.Atoi(c.Query("units"))
	if err != nil || units < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'units' must be a non-negative integer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"units":        units,
		"shipping_fee": models.ShippingFee(units),
	})
}
