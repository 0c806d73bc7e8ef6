// Package notify posts ingest summaries to a configured webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Summary describes the outcome of one ingest batch.
type Summary struct {
	Source    string   `json:"source"`
	DateLabel string   `json:"date_label"`
	Entries   int      `json:"entries"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

type Webhook struct {
	url  string
	http *http.Client
}

// NewWebhook returns nil when no URL is configured; callers treat a nil
// notifier as disabled.
func NewWebhook(url string) *Webhook {
	if url == "" {
		return nil
	}
	return &Webhook{url: url, http: &http.Client{Timeout: 10 * time.Second}}
}

func (w *Webhook) Send(ctx context.Context, s Summary) error {
	if w == nil {
		return nil
	}
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("post webhook: status %d", resp.StatusCode)
	}
	return nil
}
