package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrNotFound reports a lookup that resolved to no ledger row. It is a valid
// outcome for read paths, surfaced as an error only at command boundaries.
var ErrNotFound = errors.New("not found")

// ScoreEntry is one (name, value) pair bound for the ledger at a target
// date. Values stay strings until a read path needs them as numbers.
type ScoreEntry struct {
	Name  string
	Value string
}

// ParseScore converts a ledger cell to a number. Thousands-separator commas
// are stripped, the result must be a finite float. The boolean is false for
// blank or non-numeric cells.
func ParseScore(cell string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
