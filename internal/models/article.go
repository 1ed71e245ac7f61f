package models

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gocql/gocql"
)

type Article struct {
	ID            gocql.UUID `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Author        string     `json:"author"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Category      string     `json:"category,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	IsPublished   bool       `json:"is_published"`
	Views         int        `json:"views"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

const excerptLen = 160

var tagRe = regexp.MustCompile(`<[^>]*>`)

// MakeExcerpt derives the list-view excerpt from article content: tags
// stripped, whitespace collapsed, cut at the closest word boundary under
// the limit. Recomputed on every write, never stored by the client.
func MakeExcerpt(content string) string {
	text := tagRe.ReplaceAllString(content, " ")
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= excerptLen {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:excerptLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
