package settingsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"LinguaNews/internal/domain"
)

func TestNewClientWithoutEndpoint(t *testing.T) {
	t.Parallel()

	client := NewClient("", nil)
	if client != nil {
		t.Fatal("expected nil client for empty endpoint")
	}

	// Nil receivers are valid: sync silently does nothing.
	flags, err := client.Fetch(context.Background(), "user-1")
	if err != nil || flags != nil {
		t.Fatalf("nil client Fetch: flags=%v err=%v", flags, err)
	}
	if err := client.Save(context.Background(), "user-1", "", nil); err != nil {
		t.Fatalf("nil client Save: %v", err)
	}
}

func TestFetch(t *testing.T) {
	t.Parallel()

	var gotUser string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.URL.Query().Get("userId")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"company":{"Google":false,"OpenAI":true,"Unknown":true}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, server.Client())

	flags, err := client.Fetch(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUser != "user-42" {
		t.Fatalf("expected userId query param, got %q", gotUser)
	}

	if enabled, ok := flags[domain.SourceGoogle]; !ok || enabled {
		t.Fatalf("Google should be present and disabled: %v", flags)
	}
	if enabled, ok := flags[domain.SourceOpenAI]; !ok || !enabled {
		t.Fatalf("OpenAI should be present and enabled: %v", flags)
	}
	if _, ok := flags[domain.Source("Unknown")]; ok {
		t.Fatal("unknown sources must be dropped")
	}
	if _, ok := flags[domain.SourceAWS]; ok {
		t.Fatal("missing sources must stay absent, not default here")
	}
}

func TestFetchBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, server.Client())
	if _, err := client.Fetch(context.Background(), "u"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestSave(t *testing.T) {
	t.Parallel()

	var (
		gotAuth string
		payload map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, server.Client())

	err := client.Save(context.Background(), "user-42", "tok-1", map[domain.Source]bool{
		domain.SourceGoogle: false,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if payload["userId"] != "user-42" {
		t.Fatalf("unexpected userId: %v", payload["userId"])
	}

	// Every known source is posted; flags missing from the input go true.
	if payload["Google"] != false {
		t.Fatalf("Google should be posted false: %v", payload["Google"])
	}
	for _, src := range domain.Sources() {
		if src == domain.SourceGoogle {
			continue
		}
		if payload[string(src)] != true {
			t.Fatalf("source %s should default to true: %v", src, payload[string(src)])
		}
	}
}

func TestSaveWithoutToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected Authorization header %q", got)
		}
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, server.Client())
	if err := client.Save(context.Background(), "u", "", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestSaveBadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, server.Client())
	err := client.Save(context.Background(), "u", "", nil)
	if err == nil {
		t.Fatal("expected error on 403")
	}
}
