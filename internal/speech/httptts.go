package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const stopTimeout = 3 * time.Second

// HTTPEngine talks to an external text-to-speech service that plays the
// synthesized audio on the device.
type HTTPEngine struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

var _ Engine = (*HTTPEngine)(nil)

// NewHTTPEngine creates a reusable client for the speech service.
func NewHTTPEngine(endpoint, apiKey string) *HTTPEngine {
	return &HTTPEngine{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Speak posts the text and blocks until the service reports playback
// finished.
func (e *HTTPEngine) Speak(ctx context.Context, text string) error {
	return e.post(ctx, "/speak", map[string]any{
		"text":     text,
		"language": Language,
	})
}

// Stop aborts whatever the service is currently playing.
func (e *HTTPEngine) Stop(ctx context.Context) error {
	return e.post(ctx, "/stop", map[string]any{})
}

func (e *HTTPEngine) post(ctx context.Context, path string, payload any) error {
	if e == nil || e.endpoint == "" {
		return fmt.Errorf("speech service misconfigured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("speech service %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	return nil
}
