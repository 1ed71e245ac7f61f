package user

import (
	"encoding/json"
	"net/http"
	"time"

	"maktaba_back_end/internal/cache"
	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const cartTTL = 30 * 24 * time.Hour

// ================== CART (authenticated) ==================
//
// The cart is a JSON document in Redis keyed by the account id. Every
// mutation returns the full cart so the client can replace its state
// wholesale instead of patching.

func cartKey(userID string) string { return "cart:" + userID }

// LoadCart reads a cart document; a missing key is an empty cart.
func LoadCart(key string) ([]models.CartItem, error) {
	raw, err := cache.GetCache(key)
	if err != nil || raw == "" {
		return []models.CartItem{}, nil
	}
	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []models.CartItem{}, nil
	}
	return items, nil
}

// SaveCart writes the cart document back; an empty cart deletes the key.
func SaveCart(key string, items []models.CartItem) error {
	if len(items) == 0 {
		return cache.DeleteCache(key)
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return cache.SetCache(key, string(raw), cartTTL)
}

// CartResponse renders the canonical cart payload.
func CartResponse(items []models.CartItem) gin.H {
	return gin.H{
		"items":       items,
		"total":       models.CartTotal(items),
		"total_items": models.CartTotalItems(items),
	}
}

// snapshotCartItem authorizes and prices a line from the catalog. The
// client's price is never trusted. The stock check covers inCart too:
// what the cart already holds for this line counts against stock, so
// repeated adds can't outgrow the shelf.
func snapshotCartItem(bookID, language string, quantity, inCart int) (*models.CartItem, int, gin.H) {
	bid, err := uuid.Parse(bookID)
	if err != nil {
		return nil, http.StatusBadRequest, gin.H{"error": "Invalid book id"}
	}

	var (
		id                      gocql.UUID
		name, description       string
		author                  string
		price                   float64
		stock                   int
		imageURLs               []string
		english, urdu, isActive bool
		createdAt, updatedAt    time.Time
	)
	err = database.GetPreparedGetBookByID().Bind(gocql.UUID(bid)).Scan(
		&id, &name, &description, &author, &price, &stock, &imageURLs,
		&english, &urdu, &isActive, &createdAt, &updatedAt)
	if err != nil || !isActive {
		return nil, http.StatusNotFound, gin.H{"error": "Book not found"}
	}

	book := models.Book{English: english, Urdu: urdu}
	if !book.HasLanguage(language) {
		return nil, http.StatusBadRequest, gin.H{"error": "This edition is not available in " + language}
	}
	if stock < quantity+inCart {
		return nil, http.StatusConflict, gin.H{"error": "Not enough stock", "available": stock, "in_cart": inCart}
	}

	item := models.CartItem{
		BookID:   bookID,
		Name:     name,
		Author:   author,
		Price:    models.Price(price),
		Quantity: quantity,
		Language: language,
	}
	if len(imageURLs) > 0 {
		item.ImageURL = imageURLs[0]
	}
	return &item, 0, nil
}

// GetCart returns the signed-in account's cart.
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	items, err := LoadCart(cartKey(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart read error"})
		return
	}
	c.JSON(http.StatusOK, CartResponse(items))
}

// AddToCart adds a line or bumps an existing (book, language) line.
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")

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

	items, err := LoadCart(cartKey(userID))
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
	if err := SaveCart(cartKey(userID), items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart write error"})
		return
	}

	c.JSON(http.StatusOK, CartResponse(items))
}

// UpdateCartItem sets the quantity of a (book, language) line. Quantity
// zero removes the line.
func UpdateCartItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		BookID   string `json:"book_id" binding:"required"`
		Language string `json:"language"`
		Quantity *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := LoadCart(cartKey(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart read error"})
		return
	}
	items = models.SetQuantity(items, input.BookID, input.Language, *input.Quantity)
	if err := SaveCart(cartKey(userID), items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart write error"})
		return
	}

	c.JSON(http.StatusOK, CartResponse(items))
}

// RemoveFromCart drops a (book, language) line.
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")

	var input struct {
		BookID   string `json:"book_id" binding:"required"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := LoadCart(cartKey(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart read error"})
		return
	}
	items = models.RemoveItem(items, input.BookID, input.Language)
	if err := SaveCart(cartKey(userID), items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart write error"})
		return
	}

	c.JSON(http.StatusOK, CartResponse(items))
}

// ClearCart empties the cart.
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if err := cache.DeleteCache(cartKey(userID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart write error"})
		return
	}
	c.JSON(http.StatusOK, CartResponse(nil))
}
