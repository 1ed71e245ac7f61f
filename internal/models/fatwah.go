package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Fatwah lifecycle: draft → pending → published, admin-driven only.
const (
	FatwahDraft     = "draft"
	FatwahPending   = "pending"
	FatwahPublished = "published"
)

// FatwahCategories is the closed set of question categories.
var FatwahCategories = []string{
	"aqeedah", "ibadah", "marriage", "business", "inheritance",
	"purification", "fasting", "zakat", "hajj", "general",
}

type Fatwah struct {
	ID         gocql.UUID `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer,omitempty"`
	AskerName  string     `json:"asker_name,omitempty"`
	AskerEmail string     `json:"asker_email,omitempty"`
	Categories []string   `json:"categories"`
	Status     string     `json:"status"`
	AnsweredBy string     `json:"answered_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// PublicFatwah is the serialization used on public surfaces. The asker's
// email is never published, and the name is kept only because askers submit
// it for attribution.
type PublicFatwah struct {
	ID         gocql.UUID `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer,omitempty"`
	AskerName  string     `json:"asker_name,omitempty"`
	Categories []string   `json:"categories"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Public strips the editorial and contact fields for storefront responses.
func (f Fatwah) Public() PublicFatwah {
	return PublicFatwah{
		ID:         f.ID,
		Question:   f.Question,
		Answer:     f.Answer,
		AskerName:  f.AskerName,
		Categories: f.Categories,
		CreatedAt:  f.CreatedAt,
	}
}

func ValidFatwahStatus(s string) bool {
	return s == FatwahDraft || s == FatwahPending || s == FatwahPublished
}

// CanTransitionFatwah enforces the forward-only editorial lifecycle.
// Published answers can be pulled back to draft for rework.
func CanTransitionFatwah(from, to string) bool {
	if !ValidFatwahStatus(from) || !ValidFatwahStatus(to) || from == to {
		return false
	}
	switch from {
	case FatwahDraft:
		return to == FatwahPending
	case FatwahPending:
		return to == FatwahPublished || to == FatwahDraft
	case FatwahPublished:
		return to == FatwahDraft
	}
	return false
}

func IsFatwahCategory(cat string) bool {
	for _, c := range FatwahCategories {
		if c == cat {
			return true
		}
	}
	return false
}
