package amqp

import (
	"encoding/json"
	"time"
)

// ScoreBatchMessage carries one raw extraction result toward the ledger.
// Raw holds the worker's unprocessed output; the consumer runs the full
// decode-and-upsert path so producers stay dumb.
type ScoreBatchMessage struct {
	Source    string    `json:"source"` // "ocr" or "manual"
	DateLabel string    `json:"date_label"`
	Raw       string    `json:"raw"`
	Timestamp time.Time `json:"timestamp"`
}

// NewScoreBatchMessage creates a message stamped with the current time.
func NewScoreBatchMessage(source, dateLabel, raw string) *ScoreBatchMessage {
	return &ScoreBatchMessage{
		Source:    source,
		DateLabel: dateLabel,
		Raw:       raw,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ScoreBatchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ScoreBatchMessageFromJSON creates a message from JSON bytes
func ScoreBatchMessageFromJSON(data []byte) (*ScoreBatchMessage, error) {
	var msg ScoreBatchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
