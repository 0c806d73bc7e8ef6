package ledger

import (
	"encoding/json"
	"testing"

	"culvert/internal/core"
)

func testSnapshot() Snapshot {
	return Snapshot{
		{"Name", "2/23/24", "Week Total", "3/1/24", "3/8/24"},
		{"Alice", "1,000", "x", "2000", ""},
		{"Bob", "", "9", "500", "750"},
	}
}

func TestExtractSkipsBadColumnsAndCells(t *testing.T) {
	s, ok := Extract(testSnapshot(), "alice")
	if !ok {
		t.Fatal("alice not found")
	}
	if s.Name != "Alice" {
		t.Fatalf("display name = %q", s.Name)
	}
	// "Week Total" fails the date filter; the blank 3/8/24 cell fails the
	// number filter. Both are skipped, not zeroed.
	if len(s.Points) != 2 {
		t.Fatalf("points = %+v", s.Points)
	}
	if s.Points[0].Label != "2/23/24" || s.Points[0].Value != 1000 {
		t.Fatalf("first point = %+v", s.Points[0])
	}
	if s.Points[1].Label != "3/1/24" || s.Points[1].Value != 2000 {
		t.Fatalf("second point = %+v", s.Points[1])
	}
}

func TestExtractSortsByDate(t *testing.T) {
	snap := Snapshot{
		{"Name", "3/8/24", "2/23/24"},
		{"Alice", "2", "1"},
	}
	s, ok := Extract(snap, "Alice")
	if !ok || len(s.Points) != 2 {
		t.Fatalf("extract: %+v %v", s, ok)
	}
	if s.Points[0].Label != "2/23/24" || s.Points[1].Label != "3/8/24" {
		t.Fatalf("not date sorted: %+v", s.Points)
	}
}

func TestExtractExactMatchOnly(t *testing.T) {
	if _, ok := Extract(testSnapshot(), "Ali"); ok {
		t.Fatal("substring input must not resolve on the read path")
	}
	if _, ok := Extract(testSnapshot(), "  ALICE "); !ok {
		t.Fatal("normalized exact match must resolve")
	}
	if _, ok := Extract(nil, "Alice"); ok {
		t.Fatal("empty snapshot must report not found")
	}
}

func TestAlignFillsGaps(t *testing.T) {
	d1 := core.NewDateKey(2024, 2, 23)
	d2 := core.NewDateKey(2024, 3, 1)
	d3 := core.NewDateKey(2024, 3, 8)
	a := Series{Name: "A", Points: []Point{
		{Label: "2/23/24", Date: d1, Value: 10},
		{Label: "3/1/24", Date: d2, Value: 20},
	}}
	b := Series{Name: "B", Points: []Point{
		{Label: "3/1/24", Date: d2, Value: 30},
		{Label: "3/8/24", Date: d3, Value: 40},
	}}

	got := Align(a, b)
	wantLabels := []string{"2/23/24", "3/1/24", "3/8/24"}
	for i, l := range wantLabels {
		if got.Labels[i] != l {
			t.Fatalf("labels = %v, want %v", got.Labels, wantLabels)
		}
	}
	wantA := []Value{{10, true}, {20, true}, {}}
	wantB := []Value{{}, {30, true}, {40, true}}
	for i := range wantA {
		if got.A[i] != wantA[i] || got.B[i] != wantB[i] {
			t.Fatalf("aligned values A=%v B=%v", got.A, got.B)
		}
	}
}

func TestValueMarshalsGapAsNull(t *testing.T) {
	out, err := json.Marshal([]Value{{10, true}, {}})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "[10,null]" {
		t.Fatalf("marshal = %s", out)
	}
}

func TestAggregateTreatsBlanksAsZero(t *testing.T) {
	points := Aggregate(testSnapshot())
	// Three date columns survive; "Week Total" does not.
	if len(points) != 3 {
		t.Fatalf("points = %+v", points)
	}
	// 2/23/24: Alice 1000 + Bob blank -> 1000.
	if points[0].Label != "2/23/24" || points[0].Value != 1000 {
		t.Fatalf("first = %+v", points[0])
	}
	// 3/1/24: 2000 + 500.
	if points[1].Value != 2500 {
		t.Fatalf("second = %+v", points[1])
	}
	// 3/8/24: Alice blank contributes 0, Bob 750.
	if points[2].Value != 750 {
		t.Fatalf("third = %+v", points[2])
	}
}

func TestAggregateEmptySnapshot(t *testing.T) {
	if got := Aggregate(nil); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}
