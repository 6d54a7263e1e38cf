// Package metadata derives display metadata from post content.
package metadata

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultExcerptLength is the target length for derived excerpts.
const DefaultExcerptLength = 160

// PlainText strips HTML markup from content and collapses whitespace.
// Content without markup is returned with whitespace normalized.
func PlainText(content string) string {
	text := content
	if strings.ContainsRune(content, '<') {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
		if err == nil {
			doc.Find("script, style").Remove()
			text = doc.Text()
		}
	}
	return strings.Join(strings.Fields(text), " ")
}

// Excerpt derives a plain-text summary from post content, truncated at
// a word boundary. maxLen counts runes, not bytes.
func Excerpt(content string, maxLen int) string {
	text := PlainText(content)
	if maxLen <= 0 {
		maxLen = DefaultExcerptLength
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := string(runes[:maxLen])
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " .,;:") + "..."
}
