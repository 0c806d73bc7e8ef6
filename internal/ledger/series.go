package ledger

import (
	"encoding/json"
	"sort"

	"culvert/internal/core"
)

// Point is one dated score in a derived series. Label is the header text the
// date came from; Date is only used for ordering.
type Point struct {
	Label string
	Date  core.DateKey
	Value float64
}

// Series is a date-sorted view of one ledger row.
type Series struct {
	Name   string
	Points []Point
}

// Value is an aligned sample: Valid is false where a series has no point for
// a date. It marshals to JSON null so chart payloads keep true gaps instead
// of false zeros.
type Value struct {
	Float float64
	Valid bool
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Float)
}

// Alignment is two series re-sampled onto the union of their dates.
type Alignment struct {
	Labels []string
	A, B   []Value
}

// Extract derives the time series for one member. Name resolution is exact
// (normalized) match only; fuzzy matching is reserved for writes. A column
// survives only if its header parses as a date and this row's cell parses as
// a number; the two filters are independent, so a dated column with a blank
// cell is skipped rather than read as zero.
func Extract(snapshot Snapshot, name string) (Series, bool) {
	if len(snapshot) == 0 {
		return Series{}, false
	}
	index := core.NewRowIndex()
	for r := 1; r < len(snapshot); r++ {
		n := core.Normalize(cellAt(snapshot[r], 0))
		if n == "" {
			continue
		}
		index.Add(n, r)
	}
	row, ok := index.FindExact(name)
	if !ok {
		return Series{}, false
	}

	header := snapshot[0]
	var points []Point
	for c := 1; c < len(header); c++ {
		date, err := core.ParseHeaderDate(header[c])
		if err != nil {
			continue
		}
		v, ok := core.ParseScore(cellAt(snapshot[row], c))
		if !ok {
			continue
		}
		points = append(points, Point{Label: header[c], Date: date, Value: v})
	}
	sortPoints(points)
	return Series{Name: cellAt(snapshot[row], 0), Points: points}, true
}

// Align re-samples two series onto the sorted union of their dates, filling
// gaps with invalid Values. When both series carry the same date the label
// of either may be used; they come from the same header row.
func Align(a, b Series) Alignment {
	type slot struct {
		date core.DateKey
		a, b *Point
	}
	slots := map[int64]*slot{}
	keys := []int64{}

	add := func(p Point, pick func(*slot, *Point)) {
		k := p.Date.Unix()
		s, ok := slots[k]
		if !ok {
			s = &slot{date: p.Date}
			slots[k] = s
			keys = append(keys, k)
		}
		pick(s, &p)
	}
	for i := range a.Points {
		add(a.Points[i], func(s *slot, p *Point) { s.a = p })
	}
	for i := range b.Points {
		add(b.Points[i], func(s *slot, p *Point) { s.b = p })
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := Alignment{
		Labels: make([]string, 0, len(keys)),
		A:      make([]Value, 0, len(keys)),
		B:      make([]Value, 0, len(keys)),
	}
	for _, k := range keys {
		s := slots[k]
		label := ""
		switch {
		case s.a != nil:
			label = s.a.Label
		case s.b != nil:
			label = s.b.Label
		}
		out.Labels = append(out.Labels, label)
		out.A = append(out.A, valueOf(s.a))
		out.B = append(out.B, valueOf(s.b))
	}
	return out
}

// Aggregate sums every valid date column across all data rows. Blank or
// non-numeric cells contribute zero here, unlike Extract where they drop the
// point; the asymmetry matches how the sheet has always been read.
func Aggregate(snapshot Snapshot) []Point {
	if len(snapshot) == 0 {
		return nil
	}
	header := snapshot[0]
	var points []Point
	for c := 1; c < len(header); c++ {
		date, err := core.ParseHeaderDate(header[c])
		if err != nil {
			continue
		}
		total := 0.0
		for r := 1; r < len(snapshot); r++ {
			if v, ok := core.ParseScore(cellAt(snapshot[r], c)); ok {
				total += v
			}
		}
		points = append(points, Point{Label: header[c], Date: date, Value: total})
	}
	sortPoints(points)
	return points
}

func sortPoints(points []Point) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
}

func valueOf(p *Point) Value {
	if p == nil {
		return Value{}
	}
	return Value{Float: p.Value, Valid: true}
}
