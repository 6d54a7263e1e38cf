package metadata_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pukadigital/content-hub/internal/metadata"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "plain content unchanged",
			content:  "Just some text.",
			expected: "Just some text.",
		},
		{
			name:     "strips markup",
			content:  "<p>Hello <strong>world</strong></p>",
			expected: "Hello world",
		},
		{
			name:     "drops script and style",
			content:  "<p>Visible</p><script>alert(1)</script><style>p{}</style>",
			expected: "Visible",
		},
		{
			name:     "collapses whitespace",
			content:  "one\n\n  two\tthree",
			expected: "one two three",
		},
		{
			name:     "empty",
			content:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, metadata.PlainText(tt.content))
		})
	}
}

func TestExcerpt(t *testing.T) {
	t.Run("short content returned whole", func(t *testing.T) {
		assert.Equal(t, "Hello world", metadata.Excerpt("<p>Hello world</p>", 160))
	})

	t.Run("truncates at word boundary", func(t *testing.T) {
		content := strings.Repeat("palabra ", 60)
		got := metadata.Excerpt(content, 50)

		assert.True(t, strings.HasSuffix(got, "..."))
		assert.LessOrEqual(t, len([]rune(got)), 53)
		assert.NotContains(t, strings.TrimSuffix(got, "..."), "palabr...")
	})

	t.Run("zero maxLen uses default", func(t *testing.T) {
		content := strings.Repeat("x ", 400)
		got := metadata.Excerpt(content, 0)

		assert.LessOrEqual(t, len([]rune(got)), metadata.DefaultExcerptLength+3)
	})

	t.Run("multibyte content counts runes", func(t *testing.T) {
		content := strings.Repeat("ñ", 200)
		got := metadata.Excerpt(content, 100)

		assert.True(t, strings.HasSuffix(got, "..."))
		assert.LessOrEqual(t, len([]rune(got)), 103)
	})
}
