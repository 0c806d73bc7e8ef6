package ledger

import "culvert/internal/core"

// NameHeader is the header text of the name column, asserted on every upsert.
const NameHeader = "Name"

// Snapshot is a rectangular read of the ledger sheet. Row 0 is the header
// row; column 0 of every data row holds a display name. Rows may be ragged;
// missing cells read as empty strings.
type Snapshot [][]string

// CellWrite is one range write to apply to the store. Range is an A1-style
// reference without the sheet name; the store adapter qualifies it.
type CellWrite struct {
	Range  string
	Values [][]string
}

// Upsert reconciles a batch of score entries into the snapshot for the given
// date label and returns the writes that bring the store in line. The
// snapshot itself is not modified. An empty batch emits nothing.
//
// Rows are resolved fuzzily (core.RowIndex semantics); unresolved names get
// a fresh row appended with the original display name and are registered
// immediately, so later entries in the same batch can match them. After the
// per-entry writes, the header cells and the full name column are
// re-asserted to keep the store consistent if another writer appended rows
// concurrently.
func Upsert(snapshot Snapshot, dateLabel string, entries []core.ScoreEntry) []CellWrite {
	if len(entries) == 0 {
		return nil
	}

	rows := clone(snapshot)
	if len(rows) == 0 {
		rows = Snapshot{{NameHeader}}
	}

	dateCol := headerColumn(rows[0], dateLabel)
	if dateCol < 0 {
		dateCol = len(rows[0])
		if dateCol < 1 {
			dateCol = 1
		}
		rows[0] = growTo(rows[0], dateCol+1)
		rows[0][dateCol] = dateLabel
	}

	index := core.NewRowIndex()
	for r := 1; r < len(rows); r++ {
		name := core.Normalize(cellAt(rows[r], 0))
		if name == "" {
			continue
		}
		index.Add(name, r)
	}

	var writes []CellWrite
	for _, e := range entries {
		row, ok := index.Find(e.Name)
		if !ok {
			row = len(rows)
			newRow := growTo(nil, dateCol+1)
			newRow[0] = e.Name
			rows = append(rows, newRow)
			index.Add(core.Normalize(e.Name), row)
		}
		rows[row] = growTo(rows[row], dateCol+1)
		rows[row][dateCol] = e.Value
		writes = append(writes, CellWrite{
			Range:  cellRef(dateCol, row),
			Values: [][]string{{e.Value}},
		})
	}

	// Header and name-column reassertions cover rows appended above and keep
	// the sheet self-consistent when concurrent upserts raced on row creation.
	writes = append(writes,
		CellWrite{Range: cellRef(0, 0), Values: [][]string{{NameHeader}}},
		CellWrite{Range: cellRef(dateCol, 0), Values: [][]string{{dateLabel}}},
	)
	if len(rows) > 1 {
		names := make([][]string, 0, len(rows)-1)
		for r := 1; r < len(rows); r++ {
			names = append(names, []string{cellAt(rows[r], 0)})
		}
		writes = append(writes, CellWrite{
			Range:  cellRef(0, 1) + ":" + cellRef(0, len(rows)-1),
			Values: names,
		})
	}
	return writes
}

// headerColumn finds dateLabel in the header row by exact string match,
// ignoring the name column. Returns -1 when absent.
func headerColumn(header []string, dateLabel string) int {
	for c := 1; c < len(header); c++ {
		if header[c] == dateLabel {
			return c
		}
	}
	return -1
}

func clone(s Snapshot) Snapshot {
	out := make(Snapshot, len(s))
	for i, row := range s {
		out[i] = append([]string(nil), row...)
	}
	return out
}

func growTo(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}

func cellAt(row []string, c int) string {
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}
