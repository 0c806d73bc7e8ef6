// Package chart renders series as PNG images via the QuickChart API. It is
// a thin network call: aligned series in, image bytes out.
package chart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"culvert/internal/ledger"
)

// DefaultBaseURL is the hosted QuickChart endpoint.
const DefaultBaseURL = "https://quickchart.io"

var palette = []string{"#36a2eb", "#ff6384", "#4bc0c0", "#ff9f40"}

// Dataset is one line on the chart. Invalid values become JSON nulls, which
// QuickChart renders as gaps (spanGaps is off).
type Dataset struct {
	Label  string
	Values []ledger.Value
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Line renders a line chart and returns the PNG bytes.
func (c *Client) Line(ctx context.Context, title string, labels []string, datasets []Dataset) ([]byte, error) {
	payload, err := json.Marshal(c.request(title, labels, datasets))
	if err != nil {
		return nil, fmt.Errorf("marshal chart config: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chart", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build chart request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("render chart: status %d: %s", resp.StatusCode, body)
	}
	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chart image: %w", err)
	}
	return img, nil
}

func (c *Client) request(title string, labels []string, datasets []Dataset) map[string]any {
	sets := make([]map[string]any, 0, len(datasets))
	for i, d := range datasets {
		color := palette[i%len(palette)]
		sets = append(sets, map[string]any{
			"label":       d.Label,
			"data":        d.Values,
			"fill":        false,
			"borderColor": color,
			"spanGaps":    false,
		})
	}
	return map[string]any{
		"format":          "png",
		"backgroundColor": "white",
		"width":           800,
		"height":          400,
		"chart": map[string]any{
			"type": "line",
			"data": map[string]any{
				"labels":   labels,
				"datasets": sets,
			},
			"options": map[string]any{
				"title": map[string]any{
					"display": title != "",
					"text":    title,
				},
			},
		},
	}
}
