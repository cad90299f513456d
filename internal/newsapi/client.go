// Package newsapi talks to the remote leveled-news endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"LinguaNews/internal/domain"
)

const requestTimeout = 15 * time.Second

// ErrNotConfigured is returned at construction when no endpoint is set.
var ErrNotConfigured = errors.New("news endpoint is not configured")

// ErrNotFound marks a detail lookup miss; it is an absent result, not a
// transport failure.
var ErrNotFound = errors.New("article not found")

// NetworkError wraps transport, timeout, and non-2xx failures so the
// store can record them as a retryable failed state.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("news api %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Client fetches the news collection over HTTP. No retries: the caller
// surfaces failures and re-triggers on demand.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewClient validates the endpoint up front so a missing configuration
// fails at construction, not inside the first request.
func NewClient(endpoint string, client *http.Client, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, ErrNotConfigured
	}
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{endpoint: endpoint, client: client, logger: logger}, nil
}

// FetchList issues a single GET and normalizes whichever envelope the
// server chose into a flat article list.
func (c *Client) FetchList(ctx context.Context) ([]domain.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "fetch list", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: "fetch list", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read body", Err: err}
	}

	shape, items := decodeEnvelope(raw)
	c.logger.Debug("news list fetched", "envelope", shape, "count", len(items))
	return items, nil
}

// FetchDetail loads the full list and scans for the first exact id
// match. There is no single-item endpoint, so a detail lookup shares the
// latency and failure profile of a list fetch.
func (c *Client) FetchDetail(ctx context.Context, id string) (domain.Article, error) {
	items, err := c.FetchList(ctx)
	if err != nil {
		return domain.Article{}, err
	}

	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}

	return domain.Article{}, ErrNotFound
}

// envelopeShape tags which of the tolerated response forms was decoded.
type envelopeShape string

const (
	shapeArray        envelopeShape = "array"
	shapeItemsWrapper envelopeShape = "items"
	shapeDataWrapper  envelopeShape = "data"
	shapeUnrecognized envelopeShape = "unrecognized"
)

// decodeEnvelope tolerates a bare array, an {items:[...]} wrapper, a
// {data:[...]} wrapper, and the double-encoded string form some
// serverless backends emit. Anything else yields an empty list.
func decodeEnvelope(raw []byte) (envelopeShape, []domain.Article) {
	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		raw = []byte(nested)
	}

	var direct []domain.Article
	if err := json.Unmarshal(raw, &direct); err == nil {
		return shapeArray, direct
	}

	var wrapped struct {
		Items json.RawMessage `json:"items"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return shapeUnrecognized, nil
	}

	if items, ok := decodeArticles(wrapped.Items); ok {
		return shapeItemsWrapper, items
	}
	if items, ok := decodeArticles(wrapped.Data); ok {
		return shapeDataWrapper, items
	}

	return shapeUnrecognized, nil
}

func decodeArticles(raw json.RawMessage) ([]domain.Article, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	var items []domain.Article
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	if items == nil {
		return nil, false
	}
	return items, true
}
