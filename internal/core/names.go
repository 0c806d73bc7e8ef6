package core

import (
	"strings"

	"golang.org/x/text/cases"
)

var foldCaser = cases.Fold()

// Normalize maps a display name to its matching key: trimmed, internal
// whitespace runs collapsed to a single space, case-folded. The normalized
// form is never displayed.
func Normalize(name string) string {
	return foldCaser.String(strings.Join(strings.Fields(name), " "))
}

// RowIndex maps normalized names to ledger row indices. Insertion order is
// kept explicitly so the fuzzy tie-break below is deterministic regardless
// of map iteration order.
type RowIndex struct {
	rows  map[string]int
	order []string
}

func NewRowIndex() *RowIndex {
	return &RowIndex{rows: make(map[string]int)}
}

// Add registers a normalized name at the given row. Re-adding an existing
// name keeps its original position in the insertion order.
func (ix *RowIndex) Add(normalized string, row int) {
	if _, ok := ix.rows[normalized]; !ok {
		ix.order = append(ix.order, normalized)
	}
	ix.rows[normalized] = row
}

// Len returns the number of indexed names.
func (ix *RowIndex) Len() int { return len(ix.rows) }

// FindExact looks up a display name by its normalized form only.
func (ix *RowIndex) FindExact(name string) (int, bool) {
	row, ok := ix.rows[Normalize(name)]
	return row, ok
}

// Find resolves a display name to a row. Resolution is exact match first,
// then a substring pass in either direction (an indexed name containing the
// input, or the input containing an indexed name), picking the candidate
// whose normalized length is closest to the input's. Ties keep the earliest
// inserted candidate.
func (ix *RowIndex) Find(name string) (int, bool) {
	norm := Normalize(name)
	if norm == "" {
		return 0, false
	}
	if row, ok := ix.rows[norm]; ok {
		return row, true
	}

	best := ""
	bestDist := -1
	for _, candidate := range ix.order {
		if !strings.Contains(candidate, norm) && !strings.Contains(norm, candidate) {
			continue
		}
		dist := len(candidate) - len(norm)
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	if bestDist < 0 {
		return 0, false
	}
	return ix.rows[best], true
}
