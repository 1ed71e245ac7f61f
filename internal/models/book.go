package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Book struct {
	ID          gocql.UUID `json:"id" db:"book_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Author      string     `json:"author" db:"author"`
	Price       Price      `json:"price" db:"price"`
	Stock       int        `json:"stock" db:"stock"`
	ImageURLs   []string   `json:"image_urls" db:"image_urls"`
	// Language editions available for this title
	English   bool       `json:"english" db:"english"`
	Urdu      bool       `json:"urdu" db:"urdu"`
	IsActive  bool       `json:"is_active" db:"is_active"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// HasLanguage reports whether the title is sold in the given edition.
// An empty language is always acceptable (single-edition titles).
func (b Book) HasLanguage(lang string) bool {
	switch lang {
	case "":
		return true
	case "english":
		return b.English
	case "urdu":
		return b.Urdu
	default:
		return false
	}
}
