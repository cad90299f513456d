// Package settingsapi syncs per-user news-source preferences with the
// backend. All calls are best effort: the local store stays
// authoritative and callers log and swallow failures.
package settingsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"LinguaNews/internal/domain"
)

// Client reads and persists the per-source enable flags.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient returns nil when no endpoint is configured; source sync is
// an optional feature and a nil client simply disables it.
func NewClient(endpoint string, client *http.Client) *Client {
	if strings.TrimSpace(endpoint) == "" {
		return nil
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{endpoint: endpoint, client: client}
}

// Fetch loads the stored flags for a user. Unknown sources in the
// response are dropped; missing ones are left to the caller's defaults.
func (c *Client) Fetch(ctx context.Context, userID string) (map[domain.Source]bool, error) {
	if c == nil {
		return nil, nil
	}

	endpoint := c.endpoint + "?userId=" + url.QueryEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sources: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch sources: unexpected status %s", resp.Status)
	}

	var payload struct {
		Company map[string]bool `json:"company"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode sources: %w", err)
	}

	flags := make(map[domain.Source]bool)
	for _, src := range domain.Sources() {
		if enabled, ok := payload.Company[string(src)]; ok {
			flags[src] = enabled
		}
	}
	return flags, nil
}

// Save persists the full flag set, authorizing with the bearer token
// when one is available.
func (c *Client) Save(ctx context.Context, userID, token string, flags map[domain.Source]bool) error {
	if c == nil {
		return nil
	}

	payload := map[string]any{"userId": userID}
	for _, src := range domain.Sources() {
		enabled, ok := flags[src]
		if !ok {
			enabled = true
		}
		payload[string(src)] = enabled
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal sources: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("save sources: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("save sources %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	return nil
}
