package content

import (
	"log"
	"net/http"
	"time"

	"maktaba_back_end/internal/database"
	"maktaba_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// ================== FATWAH Q&A ==================
//
// Public surfaces only ever see the PublicFatwah shape: the asker's
// email stays in the back office.

func scanFatwah(session *gocql.Session, fatwahID gocql.UUID) (*models.Fatwah, error) {
	var (
		f         models.Fatwah
		updatedAt time.Time
	)
	err := session.Query(`SELECT fatwah_id, question, answer, asker_name, asker_email,
		categories, status, answered_by, created_at, updated_at
		FROM fatwahs WHERE fatwah_id = ?`, fatwahID).Scan(
		&f.ID, &f.Question, &f.Answer, &f.AskerName, &f.AskerEmail,
		&f.Categories, &f.Status, &f.AnsweredBy, &f.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if !updatedAt.IsZero() {
		f.UpdatedAt = &updatedAt
	}
	return &f, nil
}

// ListFatwahs returns published questions, optionally filtered by category.
func ListFatwahs(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !models.IsFatwahCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "categories": models.FatwahCategories})
		return
	}
	page, limit := pageParams(c)

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT fatwah_id, question, answer, asker_name, categories, status, created_at
		FROM fatwahs`).Iter()

	published := []models.PublicFatwah{}
	var f models.Fatwah
	for iter.Scan(&f.ID, &f.Question, &f.Answer, &f.AskerName, &f.Categories, &f.Status, &f.CreatedAt) {
		if f.Status != models.FatwahPublished {
			f = models.Fatwah{}
			continue
		}
		if category != "" && !containsCategory(f.Categories, category) {
			f = models.Fatwah{}
			continue
		}
		published = append(published, f.Public())
		f = models.Fatwah{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fatwah read error"})
		return
	}

	total := len(published)
	start, end := clipPage(total, page, limit)
	c.JSON(http.StatusOK, gin.H{
		"fatwahs":    published[start:end],
		"page":       page,
		"limit":      limit,
		"total":      total,
		"categories": models.FatwahCategories,
	})
}

// GetFatwah returns one published question.
func GetFatwah(c *gin.Context) {
	fatwahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fatwah id"})
		return
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	f, err := scanFatwah(session, gocql.UUID(fatwahID))
	if err != nil || f.Status != models.FatwahPublished {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fatwah not found"})
		return
	}

	c.JSON(http.StatusOK, f.Public())
}

// AskFatwah accepts a question from the storefront. It enters the queue
// as pending and stays invisible until an answer is published.
func AskFatwah(c *gin.Context) {
	var input struct {
		Question   string   `json:"question" binding:"required"`
		AskerName  string   `json:"asker_name"`
		AskerEmail string   `json:"asker_email" binding:"required,email"`
		Categories []string `json:"categories"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, cat := range input.Categories {
		if !models.IsFatwahCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + cat, "categories": models.FatwahCategories})
			return
		}
	}
	if len(input.Categories) == 0 {
		input.Categories = []string{"general"}
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	f := models.Fatwah{
		ID:         gocql.UUID(uuid.New()),
		Question:   input.Question,
		AskerName:  input.AskerName,
		AskerEmail: input.AskerEmail,
		Categories: input.Categories,
		Status:     models.FatwahPending,
		CreatedAt:  time.Now(),
	}

	if err := session.Query(`INSERT INTO fatwahs (fatwah_id, question, answer, asker_name, asker_email,
		categories, status, answered_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Question, "", f.AskerName, f.AskerEmail,
		f.Categories, f.Status, "", f.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Question submission error"})
		return
	}

	log.Printf("🕌 New fatwah question received (%s)", f.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Your question has been received",
		"id":      f.ID.String(),
	})
}

// ================== FATWAH Q&A (admin) ==================

// AdminListFatwahs returns the whole queue, optionally filtered by status.
func AdminListFatwahs(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidFatwahStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	iter := session.Query(`SELECT fatwah_id, question, answer, asker_name, asker_email,
		categories, status, answered_by, created_at FROM fatwahs`).Iter()

	fatwahs := []models.Fatwah{}
	var f models.Fatwah
	for iter.Scan(&f.ID, &f.Question, &f.Answer, &f.AskerName, &f.AskerEmail,
		&f.Categories, &f.Status, &f.AnsweredBy, &f.CreatedAt) {
		if status == "" || f.Status == status {
			fatwahs = append(fatwahs, f)
		}
		f = models.Fatwah{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fatwah read error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"fatwahs": fatwahs})
}

// AnswerFatwah writes or rewrites the answer. Answering moves a pending
// question to draft for review; it does not publish.
func AnswerFatwah(c *gin.Context) {
	fatwahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fatwah id"})
		return
	}

	var input struct {
		Answer     string   `json:"answer" binding:"required"`
		Categories []string `json:"categories"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, cat := range input.Categories {
		if !models.IsFatwahCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category: " + cat})
			return
		}
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	f, err := scanFatwah(session, gocql.UUID(fatwahID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fatwah not found"})
		return
	}

	categories := f.Categories
	if len(input.Categories) > 0 {
		categories = input.Categories
	}
	status := f.Status
	if status == models.FatwahPending {
		status = models.FatwahDraft
	}

	if err := session.Query(`UPDATE fatwahs SET answer = ?, categories = ?, status = ?, answered_by = ?, updated_at = ?
		WHERE fatwah_id = ?`,
		input.Answer, categories, status, c.GetString("email"), time.Now(), gocql.UUID(fatwahID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fatwah update error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer saved", "status": status})
}

// SetFatwahStatus moves a question through the editorial lifecycle.
func SetFatwahStatus(c *gin.Context) {
	fatwahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fatwah id"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
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

	f, err := scanFatwah(session, gocql.UUID(fatwahID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fatwah not found"})
		return
	}

	if !models.CanTransitionFatwah(f.Status, input.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Cannot move from " + f.Status + " to " + input.Status,
			"status": f.Status,
		})
		return
	}
	if input.Status == models.FatwahPublished && f.Answer == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot publish an unanswered question"})
		return
	}

	if err := session.Query("UPDATE fatwahs SET status = ?, updated_at = ? WHERE fatwah_id = ?",
		input.Status, time.Now(), gocql.UUID(fatwahID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fatwah update error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "status": input.Status})
}

// DeleteFatwah removes a question permanently.
func DeleteFatwah(c *gin.Context) {
	fatwahID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fatwah id"})
		return
	}

	session, err := database.GetContentSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection error"})
		return
	}

	if err := session.Query("DELETE FROM fatwahs WHERE fatwah_id = ?",
		gocql.UUID(fatwahID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fatwah delete error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fatwah deleted"})
}

func containsCategory(categories []string, cat string) bool {
	for _, c := range categories {
		if c == cat {
			return true
		}
	}
	return false
}
