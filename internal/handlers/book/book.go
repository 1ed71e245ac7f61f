package book

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"
	"maktaba_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ================== CATALOG (public) ==================

func scanBook(session *gocql.Session, bookID gocql.UUID) (*models.Book, error) {
	var (
		b         models.Book
		price     float64
		updatedAt time.Time
	)
	err := session.Query(`SELECT book_id, name, description, author, price, stock, image_urls,
		english, urdu, is_active, created_at, updated_at
		FROM books WHERE book_id = ?`, bookID).Scan(
		&b.ID, &b.Name, &b.Description, &b.Author, &price, &b.Stock, &b.ImageURLs,
		&b.English, &b.Urdu, &b.IsActive, &b.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	b.Price = models.Price(price)
	if !updatedAt.IsZero() {
		b.UpdatedAt = &updatedAt
	}
	return &b, nil
}

// ListBooks returns the active catalog with page/limit pagination.
// Optional filters: ?q= substring match on name/author, ?language=english|urdu.
func ListBooks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	language := strings.ToLower(strings.TrimSpace(c.Query("language")))
	if language != "" && language != "english" && language != "urdu" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown language filter"})
		return
	}

	session, err := database.GetBooksSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT book_id, name, description, author, price, stock, image_urls,
		english, urdu, is_active, created_at FROM books`).Iter()

	var books []models.Book
	var (
		b     models.Book
		price float64
	)
	for iter.Scan(&b.ID, &b.Name, &b.Description, &b.Author, &price, &b.Stock, &b.ImageURLs,
		&b.English, &b.Urdu, &b.IsActive, &b.CreatedAt) {
		if !b.IsActive {
			b = models.Book{}
			continue
		}
		if language == "english" && !b.English || language == "urdu" && !b.Urdu {
			b = models.Book{}
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(b.Name), q) &&
			!strings.Contains(strings.ToLower(b.Author), q) {
			b = models.Book{}
			continue
		}
		b.Price = models.Price(price)
		books = append(books, b)
		b = models.Book{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Catalog read error"})
		return
	}

	total := len(books)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"books": books[start:end],
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetBook returns one active title.
func GetBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
		return
	}

	session, err := database.GetBooksSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	b, err := scanBook(session, gocql.UUID(bookID))
	if err != nil || !b.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// ================== CATALOG (admin) ==================

// CreateBook adds a title to the catalog and indexes it for search.
func CreateBook(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Author      string   `json:"author" binding:"required"`
		Price       *float64 `json:"price" binding:"required"`
		Stock       int      `json:"stock"`
		ImageURLs   []string `json:"image_urls"`
		English     bool     `json:"english"`
		Urdu        bool     `json:"urdu"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price cannot be negative"})
		return
	}
	if input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
		return
	}
	if !input.English && !input.Urdu {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one language edition is required"})
		return
	}

	session, err := database.GetBooksSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	b := models.Book{
		ID:          gocql.UUID(uuid.New()),
		Name:        input.Name,
		Description: input.Description,
		Author:      input.Author,
		Price:       models.Price(*input.Price),
		Stock:       input.Stock,
		ImageURLs:   input.ImageURLs,
		English:     input.English,
		Urdu:        input.Urdu,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if err := session.Query(`INSERT INTO books (book_id, name, description, author, price, stock,
		image_urls, english, urdu, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Description, b.Author, float64(b.Price), b.Stock,
		b.ImageURLs, b.English, b.Urdu, b.IsActive, b.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Book creation error"})
		return
	}

	go services.IndexBook(b)

	log.Printf("📚 Book added to catalog: %s (%s)", b.Name, b.Author)
	c.JSON(http.StatusCreated, b)
}

// UpdateBook edits a title and reindexes it.
func UpdateBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
		return
	}

	var input struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Author      string   `json:"author" binding:"required"`
		Price       *float64 `json:"price" binding:"required"`
		Stock       *int     `json:"stock" binding:"required"`
		ImageURLs   []string `json:"image_urls"`
		English     bool     `json:"english"`
		Urdu        bool     `json:"urdu"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *input.Price < 0 || *input.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and stock cannot be negative"})
		return
	}
	if !input.English && !input.Urdu {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one language edition is required"})
		return
	}

	session, err := database.GetBooksSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	existing, err := scanBook(session, gocql.UUID(bookID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now()
	if err := session.Query(`UPDATE books SET name = ?, description = ?, author = ?, price = ?, stock = ?,
		image_urls = ?, english = ?, urdu = ?, is_active = ?, updated_at = ?
		WHERE book_id = ?`,
		input.Name, input.Description, input.Author, *input.Price, *input.Stock,
		input.ImageURLs, input.English, input.Urdu, isActive, now, gocql.UUID(bookID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Book update error"})
		return
	}

	updated, err := scanBook(session, gocql.UUID(bookID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Book read error"})
		return
	}

	if updated.IsActive {
		go services.IndexBook(*updated)
	} else {
		go services.RemoveBookFromIndex(updated.ID.String())
	}

	c.JSON(http.StatusOK, updated)
}

// DeactivateBook soft-deletes a title. The row stays so order history
// keeps resolving; search and the storefront stop showing it.
func DeactivateBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
		return
	}

	session, err := database.GetBooksSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if _, err := scanBook(session, gocql.UUID(bookID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	if err := session.Query("UPDATE books SET is_active = false, updated_at = ? WHERE book_id = ?",
		time.Now(), gocql.UUID(bookID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Book update error"})
		return
	}

	go services.RemoveBookFromIndex(bookID.String())

	log.Printf("🗄️ Book deactivated: %s", bookID)
	c.JSON(http.StatusOK, gin.H{"message": "Book deactivated"})
}

// AdminListBooks returns the full catalog including inactive titles.
func AdminListBooks(c *gin.Context) {
	session, err := database.GetBooksSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT book_id, name, description, author, price, stock, image_urls,
		english, urdu, is_active, created_at FROM books`).Iter()

	var books []models.Book
	var (
		b     models.Book
		price float64
	)
	for iter.Scan(&b.ID, &b.Name, &b.Description, &b.Author, &price, &b.Stock, &b.ImageURLs,
		&b.English, &b.Urdu, &b.IsActive, &b.CreatedAt) {
		b.Price = models.Price(price)
		books = append(books, b)
		b = models.Book{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Catalog read error"})
		return
	}

	if books == nil {
		books = []models.Book{}
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}
