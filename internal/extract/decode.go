// Package extract turns raw extraction-worker output into score entries.
//
// The worker's responses are messy: sometimes bare JSON, sometimes a JSON
// envelope whose "output" field holds embedded JSON, often wrapped in a
// fenced code block or surrounded by prose. DecodeEntries normalizes all of
// that with a fixed priority order, independent of the network call that
// produced the text.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"culvert/internal/core"
)

// ErrNoEntries reports worker output that yielded no usable rows.
var ErrNoEntries = errors.New("no score entries found in extraction output")

// DecodeEntries parses raw worker output into score entries. Objects missing
// a name or score field, or whose trimmed value is empty, are dropped; an
// output with no surviving entries is an error.
func DecodeEntries(raw string) ([]core.ScoreEntry, error) {
	payload := unwrapEnvelope(raw)
	objs, err := coerceRows(payload)
	if err != nil {
		return nil, err
	}

	var entries []core.ScoreEntry
	for _, obj := range objs {
		name := strings.TrimSpace(fieldString(obj, "Name", "name"))
		value := strings.TrimSpace(fieldString(obj, "Culvert", "culvert"))
		if name == "" || value == "" {
			continue
		}
		entries = append(entries, core.ScoreEntry{Name: name, Value: value})
	}
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	return entries, nil
}

// unwrapEnvelope peels the worker's {"output": "..."} envelope when present.
func unwrapEnvelope(raw string) string {
	var env struct {
		Output string `json:"output"`
	}
	if err := json.Unmarshal([]byte(raw), &env); err == nil && strings.TrimSpace(env.Output) != "" {
		return env.Output
	}
	return raw
}

// coerceRows locates and decodes the JSON rows inside free-form text.
// Priority: direct parse, fenced code block, first-to-last bracket pair,
// first-to-last brace pair. Accepted shapes: array of objects, an object
// with a "rows" array, or a single bare object.
func coerceRows(text string) ([]map[string]any, error) {
	candidates := []string{strings.TrimSpace(text)}
	if fenced, ok := fencedBlock(text); ok {
		candidates = append(candidates, fenced)
	}
	if sliced, ok := slice(text, '[', ']'); ok {
		candidates = append(candidates, sliced)
	}
	if sliced, ok := slice(text, '{', '}'); ok {
		candidates = append(candidates, sliced)
	}

	for _, candidate := range candidates {
		if objs, ok := decodeShape(candidate); ok {
			return objs, nil
		}
	}
	return nil, fmt.Errorf("%w: no decodable JSON in output", ErrNoEntries)
}

func decodeShape(candidate string) ([]map[string]any, bool) {
	var arr []map[string]any
	if err := json.Unmarshal([]byte(candidate), &arr); err == nil {
		return arr, true
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, false
	}
	if rows, ok := obj["rows"].([]any); ok {
		out := make([]map[string]any, 0, len(rows))
		for _, r := range rows {
			if m, ok := r.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out, true
	}
	return []map[string]any{obj}, true
}

func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start < 0 {
		return "", false
	}
	rest := text[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		// Skip an optional language tag on the fence line.
		rest = rest[nl+1:]
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

func slice(text string, open, closing byte) (string, bool) {
	first := strings.IndexByte(text, open)
	last := strings.LastIndexByte(text, closing)
	if first < 0 || last <= first {
		return "", false
	}
	return text[first : last+1], true
}

// fieldString reads the first present key, preferring exact-case keys, and
// stringifies numbers the way the sheet stores them.
func fieldString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			return t
		case float64:
			return strconv.FormatFloat(t, 'f', -1, 64)
		case json.Number:
			return t.String()
		}
	}
	return ""
}
