package domain

import "time"

// Article is a single news item fetched from the remote API. Besides the
// base Content it may carry precomputed variants for each CEFR level;
// missing variants fall back to Content. Articles are immutable within a
// session: the collection is replaced wholesale on every sync.
type Article struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ContentA1 string `json:"content_a1,omitempty"`
	ContentA2 string `json:"content_a2,omitempty"`
	ContentB1 string `json:"content_b1,omitempty"`
	ContentB2 string `json:"content_b2,omitempty"`
	ContentC1 string `json:"content_c1,omitempty"`
	ContentC2 string `json:"content_c2,omitempty"`
	Date      string `json:"date,omitempty"`
	FetchedAt string `json:"fetchedAt"`
	URL       string `json:"url"`
	Company   string `json:"company,omitempty"`
}

// Variant returns the precomputed text for the given level, or an empty
// string when the API did not deliver one.
func (a Article) Variant(level Level) string {
	switch level.Normalize() {
	case LevelA1:
		return a.ContentA1
	case LevelA2:
		return a.ContentA2
	case LevelB1:
		return a.ContentB1
	case LevelB2:
		return a.ContentB2
	case LevelC1:
		return a.ContentC1
	case LevelC2:
		return a.ContentC2
	}
	return ""
}

// DisplayDate prefers the publication date and falls back to the fetch
// timestamp, matching how the original feed labels items.
func (a Article) DisplayDate() string {
	if a.Date != "" {
		return a.Date
	}
	return a.FetchedAt
}

// DisplayTime parses DisplayDate as RFC3339 on a best-effort basis.
func (a Article) DisplayTime() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, a.DisplayDate())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
