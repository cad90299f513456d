// Package leveled picks the article text matching the reader's CEFR
// level and prepares it for display, speech, and notification bodies.
package leveled

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"LinguaNews/internal/domain"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// ContentFor returns the article variant for the requested level, or the
// base content when no variant exists. The level is matched
// case-insensitively. The function is total: with neither field present
// it returns whatever the base content holds, including the empty string.
func ContentFor(article domain.Article, level domain.Level) string {
	if variant := article.Variant(level); variant != "" {
		return variant
	}
	return article.Content
}

// Truncate limits text to max runes, trimming trailing whitespace and
// appending an ellipsis when anything was cut.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + Ellipsis
}

// Plaintext strips any markup left over from the article's web origin.
// Text without tags passes through unchanged apart from whitespace
// normalization.
func Plaintext(text string) string {
	if !strings.ContainsRune(text, '<') {
		return strings.TrimSpace(text)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return strings.TrimSpace(text)
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
