package book

import (
	"net/http"
	"strings"

	"maktaba_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchBooks serves catalog search from the Elasticsearch index.
func SearchBooks(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	results, err := services.SearchBooks(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
