package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
		{63, 30 * time.Second}, // shift overflow still capped
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"closed connection", errors.New("connection closed by server"), true},
		{"unexpected EOF", errors.New("unexpected EOF"), true},
		{"timeout", errors.New("i/o timeout"), true},
		{"bad payload", errors.New("no score entries found in extraction output"), false},
		{"validation", errors.New("invalid date"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isConnectionError(tt.err); got != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestScoreBatchMessageRoundTrip(t *testing.T) {
	msg := NewScoreBatchMessage("ocr", "3/1/24", `[{"Name":"Alice","Culvert":"100"}]`)
	data, err := msg.ToJSON()
	if err != nil {
		t.Fatal(err)
	}
	back, err := ScoreBatchMessageFromJSON(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Source != "ocr" || back.DateLabel != "3/1/24" || back.Raw != msg.Raw {
		t.Fatalf("round trip = %+v", back)
	}
	if _, err := ScoreBatchMessageFromJSON([]byte("{bad")); err == nil {
		t.Fatal("expected error for malformed message")
	}
}
