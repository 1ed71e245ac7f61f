package content

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ================== ARTICLES ==================

func scanArticle(session *gocql.Session, articleID gocql.UUID) (*models.Article, error) {
	var (
		a                      models.Article
		publishedAt, updatedAt time.Time
	)
	err := session.Query(`SELECT article_id, title, content, excerpt, author, featured_image,
		category, tags, is_published, views, published_at, created_at, updated_at
		FROM articles WHERE article_id = ?`, articleID).Scan(
		&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.Author, &a.FeaturedImage,
		&a.Category, &a.Tags, &a.IsPublished, &a.Views, &publishedAt, &a.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if !publishedAt.IsZero() {
		a.PublishedAt = &publishedAt
	}
	if !updatedAt.IsZero() {
		a.UpdatedAt = &updatedAt
	}
	return &a, nil
}

func listArticles(session *gocql.Session, publishedOnly bool) ([]models.Article, error) {
	iter := session.Query(`SELECT article_id, title, excerpt, author, featured_image,
		category, tags, is_published, views, published_at, created_at FROM articles`).Iter()

	var articles []models.Article
	var (
		a           models.Article
		publishedAt time.Time
	)
	for iter.Scan(&a.ID, &a.Title, &a.Excerpt, &a.Author, &a.FeaturedImage,
		&a.Category, &a.Tags, &a.IsPublished, &a.Views, &publishedAt, &a.CreatedAt) {
		if publishedOnly && !a.IsPublished {
			a = models.Article{}
			continue
		}
		if !publishedAt.IsZero() {
			pa := publishedAt
			a.PublishedAt = &pa
		}
		articles = append(articles, a)
		a = models.Article{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []models.Article{}
	}
	return articles, nil
}

// pageParams reads page/limit query values with the list defaults.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// clipPage returns the [start:end] window for a page over total items.
func clipPage(total, page, limit int) (int, int) {
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}

// ListArticles returns published articles for the storefront. List view
// carries the excerpt, not the full content.
func ListArticles(c *gin.Context) {
	page, limit := pageParams(c)

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	articles, err := listArticles(session, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Article read error"})
		return
	}

	total := len(articles)
	start, end := clipPage(total, page, limit)
	c.JSON(http.StatusOK, gin.H{
		"articles": articles[start:end],
		"page":     page,
		"limit":    limit,
		"total":    total,
	})
}

// GetArticle returns one published article and bumps its view counter.
func GetArticle(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	a, err := scanArticle(session, gocql.UUID(articleID))
	if err != nil || !a.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	// best effort, a lost increment is fine
	a.Views++
	session.Query("UPDATE articles SET views = ? WHERE article_id = ?",
		a.Views, gocql.UUID(articleID)).Exec()

	c.JSON(http.StatusOK, a)
}

// ================== ARTICLES (admin) ==================

// AdminListArticles returns all articles, drafts included.
func AdminListArticles(c *gin.Context) {
	var published *bool
	if v := c.Query("published"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid published filter"})
			return
		}
		published = &b
	}
	q := strings.ToLower(strings.TrimSpace(c.Query("q")))

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	articles, err := listArticles(session, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Article read error"})
		return
	}

	if published != nil || q != "" {
		filtered := articles[:0]
		for _, a := range articles {
			if published != nil && a.IsPublished != *published {
				continue
			}
			if q != "" && !strings.Contains(strings.ToLower(a.Title), q) &&
				!strings.Contains(strings.ToLower(a.Author), q) {
				continue
			}
			filtered = append(filtered, a)
		}
		articles = filtered
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// AdminGetArticle returns any article for editing.
func AdminGetArticle(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	a, err := scanArticle(session, gocql.UUID(articleID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, a)
}

// CreateArticle saves a new article as a draft. The excerpt is always
// derived server-side from the content.
func CreateArticle(c *gin.Context) {
	var input struct {
		Title         string   `json:"title" binding:"required"`
		Content       string   `json:"content" binding:"required"`
		Author        string   `json:"author" binding:"required"`
		FeaturedImage string   `json:"featured_image"`
		Category      string   `json:"category"`
		Tags          []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	a := models.Article{
		ID:            gocql.UUID(uuid.New()),
		Title:         input.Title,
		Content:       input.Content,
		Excerpt:       models.MakeExcerpt(input.Content),
		Author:        input.Author,
		FeaturedImage: input.FeaturedImage,
		Category:      input.Category,
		Tags:          input.Tags,
		IsPublished:   false,
		CreatedAt:     time.Now(),
	}

	if err := session.Query(`INSERT INTO articles (article_id, title, content, excerpt, author,
		featured_image, category, tags, is_published, views, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Content, a.Excerpt, a.Author, a.FeaturedImage,
		a.Category, a.Tags, a.IsPublished, 0, a.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Article creation error"})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// UpdateArticle edits an article; the excerpt is recomputed.
func UpdateArticle(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	var input struct {
		Title         string   `json:"title" binding:"required"`
		Content       string   `json:"content" binding:"required"`
		Author        string   `json:"author" binding:"required"`
		FeaturedImage string   `json:"featured_image"`
		Category      string   `json:"category"`
		Tags          []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if _, err := scanArticle(session, gocql.UUID(articleID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	if err := session.Query(`UPDATE articles SET title = ?, content = ?, excerpt = ?, author = ?,
		featured_image = ?, category = ?, tags = ?, updated_at = ? WHERE article_id = ?`,
		input.Title, input.Content, models.MakeExcerpt(input.Content), input.Author,
		input.FeaturedImage, input.Category, input.Tags, time.Now(), gocql.UUID(articleID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Article update error"})
		return
	}

	updated, err := scanArticle(session, gocql.UUID(articleID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Article read error"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// PublishArticle toggles publication. First publication stamps
// published_at; unpublishing keeps the stamp.
func PublishArticle(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	var input struct {
		Published *bool `json:"published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	a, err := scanArticle(session, gocql.UUID(articleID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	now := time.Now()
	if *input.Published && a.PublishedAt == nil {
		if err := session.Query("UPDATE articles SET is_published = ?, published_at = ?, updated_at = ? WHERE article_id = ?",
			true, now, now, gocql.UUID(articleID)).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Article update error"})
			return
		}
	} else {
		if err := session.Query("UPDATE articles SET is_published = ?, updated_at = ? WHERE article_id = ?",
			*input.Published, now, gocql.UUID(articleID)).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Article update error"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Publication state updated", "published": *input.Published})
}

// DeleteArticle removes an article permanently.
func DeleteArticle(c *gin.Context) {
	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article id"})
		return
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := session.Query("DELETE FROM articles WHERE article_id = ?",
		gocql.UUID(articleID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Article delete error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
