package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article is one news item produced by the agent. The stores treat it as
// append-only: nothing updates or deletes a saved Article.
type Article struct {
	ID          int64      `json:"id,omitempty"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Summary     string     `json:"summary"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DisplayTitle returns the title cut to 80 characters for log lines and listings.
func (a *Article) DisplayTitle() string {
	r := []rune(a.Title)
	if len(r) > 80 {
		return string(r[:80])
	}
	return a.Title
}

// Key returns a stable short hash of the URL, or of the title when the URL is empty.
func (a *Article) Key() string {
	if a.URL != "" {
		return GenerateID(a.URL)
	}
	return GenerateID(a.Title)
}

// GenerateID creates a unique ID from URL
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
