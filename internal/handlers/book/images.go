package book

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// allowed cover image types
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// UploadBookImage stores a cover image in MinIO and appends its URL to
// the book's image list.
func UploadBookImage(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book id"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported image type"})
		return
	}
	if file.Size > 5<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be under 5 MB"})
		return
	}

	session, err := database.GetBooksSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	b, err := scanBook(session, gocql.UUID(bookID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	objectName := fmt.Sprintf("books/%s/%d%s", bookID, time.Now().UnixNano(), ext)
	url, err := services.UploadFile(objectName, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Image upload error"})
		return
	}

	urls := append(b.ImageURLs, url)
	if err := session.Query("UPDATE books SET image_urls = ?, updated_at = ? WHERE book_id = ?",
		urls, time.Now(), gocql.UUID(bookID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Book update error"})
		return
	}

	b.ImageURLs = urls
	if b.IsActive {
		go services.IndexBook(*b)
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "image_urls": urls})
}
