package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"culvert/internal/ledger"
	ports "culvert/internal/sheets"
)

// Store is an in-memory cell grid with the same addressing contract as the
// Sheets adapter. It backs tests and the local backend.
type Store struct {
	mu   sync.Mutex
	grid [][]string
}

var _ ports.LedgerStore = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Seed replaces the whole grid. Test helper.
func (s *Store) Seed(rows ledger.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grid = nil
	for _, row := range rows {
		s.grid = append(s.grid, append([]string(nil), row...))
	}
}

// ReadRange returns the grid clipped to the given range. Trailing empty
// cells are kept as written; absent cells read as empty strings.
func (s *Store) ReadRange(_ context.Context, rangeSpec string) (ledger.Snapshot, error) {
	startCol, startRow, endCol, endRow, err := parseRange(rangeSpec)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if startRow < 0 {
		startRow = 0
	}
	if endRow < 0 || endRow >= len(s.grid) {
		endRow = len(s.grid) - 1
	}
	var out ledger.Snapshot
	for r := startRow; r <= endRow; r++ {
		row := s.grid[r]
		hi := endCol
		if hi < 0 || hi >= len(row) {
			hi = len(row) - 1
		}
		cells := make([]string, 0)
		for c := startCol; c <= hi; c++ {
			cells = append(cells, row[c])
		}
		out = append(out, cells)
	}
	return out, nil
}

// BatchWrite applies each write at its decoded address, growing the grid as
// needed. Writes are last-writer-wins at cell granularity.
func (s *Store) BatchWrite(_ context.Context, writes []ledger.CellWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range writes {
		col, row, _, _, err := parseRange(w.Range)
		if err != nil {
			return fmt.Errorf("write %q: %w", w.Range, err)
		}
		for dr, values := range w.Values {
			for dc, v := range values {
				s.set(row+dr, col+dc, v)
			}
		}
	}
	return nil
}

func (s *Store) set(row, col int, v string) {
	for len(s.grid) <= row {
		s.grid = append(s.grid, nil)
	}
	for len(s.grid[row]) <= col {
		s.grid[row] = append(s.grid[row], "")
	}
	s.grid[row][col] = v
}

// parseRange decodes "B2" or "A2:A10" into 0-based bounds. An omitted row
// number ("A1:ZZ") leaves the matching bound open (-1).
func parseRange(spec string) (startCol, startRow, endCol, endRow int, err error) {
	start, end, found := strings.Cut(spec, ":")
	startCol, startRow, err = parseCell(start)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if !found {
		return startCol, startRow, startCol, startRow, nil
	}
	endCol, endRow, err = parseCell(end)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return startCol, startRow, endCol, endRow, nil
}

// parseCell decodes a single A1 reference. The row part may be absent, in
// which case the returned row is -1 (open bound).
func parseCell(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A') + 1
		i++
	}
	if col == 0 {
		return 0, 0, fmt.Errorf("bad cell reference %q", ref)
	}
	if i == len(ref) {
		return col - 1, -1, nil
	}
	n, err := strconv.Atoi(ref[i:])
	if err != nil || n < 1 {
		return 0, 0, fmt.Errorf("bad cell reference %q", ref)
	}
	return col - 1, n - 1, nil
}
