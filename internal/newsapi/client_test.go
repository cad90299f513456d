package newsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"LinguaNews/internal/domain"
)

const articlesJSON = `[
	{"id":"1","title":"First","content":"base text","content_b1":"b1 text","fetchedAt":"2026-08-01T00:00:00Z","url":"https://example.org/1","company":"OpenAI"},
	{"id":"2","title":"Second","content":"more","fetchedAt":"2026-08-02T00:00:00Z","url":"https://example.org/2"}
]`

func newTestClient(t *testing.T, body string) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, server.Client(), nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientRequiresEndpoint(t *testing.T) {
	t.Parallel()

	if _, err := NewClient("  ", nil, nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestFetchListEnvelopes(t *testing.T) {
	t.Parallel()

	bodies := map[string]string{
		"bare array":    articlesJSON,
		"items wrapper": `{"items":` + articlesJSON + `}`,
		"data wrapper":  `{"data":` + articlesJSON + `}`,
	}

	var reference []domain.Article
	for name, body := range bodies {
		client := newTestClient(t, body)

		items, err := client.FetchList(context.Background())
		if err != nil {
			t.Fatalf("%s: FetchList error: %v", name, err)
		}
		if len(items) != 2 {
			t.Fatalf("%s: expected 2 items, got %d", name, len(items))
		}

		if reference == nil {
			reference = items
			continue
		}
		if !reflect.DeepEqual(items, reference) {
			t.Fatalf("%s: normalized output differs from other envelopes", name)
		}
	}
}

func TestFetchListStringWrappedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, `"[{\"id\":\"1\",\"content\":\"x\",\"fetchedAt\":\"t\",\"url\":\"u\"}]"`)

	items, err := client.FetchList(context.Background())
	if err != nil {
		t.Fatalf("FetchList error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "1" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestFetchListUnrecognizedShapes(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"empty object":    `{}`,
		"null":            `null`,
		"non-array items": `{"items":"nope"}`,
		"number":          `42`,
	} {
		client := newTestClient(t, body)

		items, err := client.FetchList(context.Background())
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", name, err)
		}
		if len(items) != 0 {
			t.Fatalf("%s: expected empty list, got %d items", name, len(items))
		}
	}
}

func TestFetchListNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, server.Client(), nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.FetchList(context.Background())

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestFetchDetail(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, articlesJSON)

	article, err := client.FetchDetail(context.Background(), "2")
	if err != nil {
		t.Fatalf("FetchDetail error: %v", err)
	}
	if article.Title != "Second" {
		t.Fatalf("unexpected article: %+v", article)
	}
}

func TestFetchDetailNotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, articlesJSON)

	if _, err := client.FetchDetail(context.Background(), "3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Matching is case-sensitive: an uppercase id never matches.
	client = newTestClient(t, `[{"id":"abc","content":"x","fetchedAt":"t","url":"u"}]`)
	if _, err := client.FetchDetail(context.Background(), "ABC"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected case-sensitive miss, got %v", err)
	}
}

func TestFetchDetailLeveledScenario(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, `[{"id":"1","content":"base text","content_b1":"b1 text","fetchedAt":"t","url":"u"}]`)

	article, err := client.FetchDetail(context.Background(), "1")
	if err != nil {
		t.Fatalf("FetchDetail error: %v", err)
	}

	if got := article.Variant(domain.LevelB1); got != "b1 text" {
		t.Fatalf("expected b1 variant, got %q", got)
	}
	if got := article.Variant(domain.LevelC2); got != "" {
		t.Fatalf("expected missing c2 variant, got %q", got)
	}
}
