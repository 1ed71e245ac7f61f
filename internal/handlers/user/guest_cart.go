package user

import (
	"net/http"

	"maktaba_back_end/internal/cache"
	"maktaba_back_end/internal/middleware"
	"maktaba_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// ================== CART (guest) ==================
//
// Guest carts live under their own key space and are deliberately kept
// separate from account carts: signing in does NOT merge a guest cart.
// A guest checks out directly from this cart with an inline shipping
// address, or rebuilds the cart after creating an account.

func guestCartKey(guestID string) string { return "guestcart:" + guestID }

// GetGuestCart returns the guest's cart.
func GetGuestCart(c *gin.Context) {
	guestID := middleware.GuestID(c)
	items, err := LoadCart(guestCartKey(guestID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart read error"})
		return
	}
	c.JSON(http.StatusOK, CartResponse(items))
}

// AddToGuestCart adds a line or bumps an existing (book, language) line.
func AddToGuestCart(c *gin.Context) {
	guestID := middleware.GuestID(c)

	var input struct {
		BookID   string `json:"book_id" binding:"required"`
		Language string `json:"language"`
		Quantity int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	items, err := LoadCart(guestCartKey(guestID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart read error"})
		return
	}
	inCart := models.LineQuantity(items, input.BookID, input.Language)
	item, status, body := snapshotCartItem(input.BookID, input.Language, input.Quantity, inCart)
	if item == nil {
		c.JSON(status, body)
		return
	}
	items = models.AddItem(items, *item)
	if err := SaveCart(guestCartKey(guestID), items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart write error"})
		return
	}

	c.JSON(http.StatusOK, CartResponse(items))
}

// UpdateGuestCartItem sets a line quantity; zero removes the line.
func UpdateGuestCartItem(c *gin.Context) {
	guestID := middleware.GuestID(c)

	var input struct {
		BookID   string `json:"book_id" binding:"required"`
		Language string `json:"language"`
		Quantity *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := LoadCart(guestCartKey(guestID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart read error"})
		return
	}
	items = models.SetQuantity(items, input.BookID, input.Language, *input.Quantity)
	if err := SaveCart(guestCartKey(guestID), items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart write error"})
		return
	}

	c.JSON(http.StatusOK, CartResponse(items))
}

// RemoveFromGuestCart drops a (book, language) line.
func RemoveFromGuestCart(c *gin.Context) {
	guestID := middleware.GuestID(c)

	var input struct {
		BookID   string `json:"book_id" binding:"required"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := LoadCart(guestCartKey(guestID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart read error"})
		return
	}
	items = models.RemoveItem(items, input.BookID, input.Language)
	if err := SaveCart(guestCartKey(guestID), items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart write error"})
		return
	}

	c.JSON(http.StatusOK, CartResponse(items))
}

// ClearGuestCart empties the guest cart.
func ClearGuestCart(c *gin.Context) {
	guestID := middleware.GuestID(c)
	if err := cache.DeleteCache(guestCartKey(guestID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart write error"})
		return
	}
	c.JSON(http.StatusOK, CartResponse(nil))
}
