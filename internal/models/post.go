package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// PostSource tags where a post was resolved from. It is set by the
// resolution layer, never by the data source itself.
type PostSource string

const (
	SourceRemote   PostSource = "remote"
	SourceFallback PostSource = "fallback"
)

const (
	defaultCategory  = "general"
	excerptRuneLimit = 160
)

// Post is the unit of content served to the site.
type Post struct {
	ID         string     `json:"id"`
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Excerpt    string     `json:"excerpt"`
	Content    string     `json:"content"`
	CoverImage string     `json:"cover_image,omitempty"`
	Date       string     `json:"date"`
	Category   string     `json:"category"`
	Source     PostSource `json:"source"`
}

// ResolutionStatus describes the outcome of a content fetch attempt.
type ResolutionStatus struct {
	IsConnected bool       `json:"is_connected"`
	Source      PostSource `json:"source"`
	LatencyMs   int64      `json:"latency_ms,omitempty"`
}

// Normalize fills defaults for fields downstream consumers depend on.
// Adapters call this at the boundary so handlers never see partial posts.
func (p *Post) Normalize() {
	if p.ID == "" {
		p.ID = p.Slug
	}
	if p.Excerpt == "" {
		p.Excerpt = excerptFromContent(p.Content)
	}
	if p.Category == "" {
		p.Category = defaultCategory
	}
	if p.Date == "" {
		p.Date = time.Now().UTC().Format(time.RFC3339)
	}
}

// PublishedAt parses the post date. Accepts RFC3339 and plain dates;
// returns the zero time when the date cannot be parsed.
func (p Post) PublishedAt() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, p.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

func excerptFromContent(content string) string {
	text := strings.TrimSpace(content)
	if utf8.RuneCountInString(text) <= excerptRuneLimit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:excerptRuneLimit])) + "..."
}
