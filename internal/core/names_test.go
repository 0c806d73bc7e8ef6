package core

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  Alice  ", "alice"},
		{"Jon\t  Smith", "jon smith"},
		{"ÉCLAIR", "éclair"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRowIndexExactBeforeSubstring(t *testing.T) {
	ix := NewRowIndex()
	ix.Add("jon smith", 1)
	ix.Add("jon", 2)

	// "Jon" matches "jon" exactly even though "jon smith" also contains it.
	row, ok := ix.Find("Jon")
	if !ok || row != 2 {
		t.Fatalf("Find(Jon) = %d,%v, want 2,true", row, ok)
	}
}

func TestRowIndexSubstringEitherDirection(t *testing.T) {
	ix := NewRowIndex()
	ix.Add("jon smith", 1)

	// Input contained in indexed name.
	if row, ok := ix.Find("Jon"); !ok || row != 1 {
		t.Fatalf("Find(Jon) = %d,%v, want 1,true", row, ok)
	}
	// Indexed name contained in input.
	if row, ok := ix.Find("jon smith jr"); !ok || row != 1 {
		t.Fatalf("Find(jon smith jr) = %d,%v, want 1,true", row, ok)
	}
	if _, ok := ix.Find("alice"); ok {
		t.Fatal("Find(alice) should not match")
	}
}

func TestRowIndexClosestLength(t *testing.T) {
	ix := NewRowIndex()
	ix.Add("jon smith", 1) // length 9, distance 6 from "jon"
	ix.Add("jonathan", 2)  // length 8, distance 5 from "jon"

	row, ok := ix.Find("jon")
	if !ok || row != 2 {
		t.Fatalf("Find(jon) = %d,%v, want 2 (closest length)", row, ok)
	}
}

func TestRowIndexTieBreakInsertionOrder(t *testing.T) {
	ix := NewRowIndex()
	ix.Add("abcx", 1)
	ix.Add("xabc", 2) // same length, same distance; first inserted wins
	row, ok := ix.Find("abc")
	if !ok || row != 1 {
		t.Fatalf("tie-break = %d,%v, want 1,true", row, ok)
	}
}

func TestRowIndexEmptyInput(t *testing.T) {
	ix := NewRowIndex()
	ix.Add("alice", 1)
	if _, ok := ix.Find("   "); ok {
		t.Fatal("blank input must not match")
	}
}

func TestRowIndexFindExactOnly(t *testing.T) {
	ix := NewRowIndex()
	ix.Add("jon smith", 1)
	if _, ok := ix.FindExact("jon"); ok {
		t.Fatal("FindExact must not fall back to substring matching")
	}
	if row, ok := ix.FindExact("  JON   SMITH "); !ok || row != 1 {
		t.Fatalf("FindExact normalized = %d,%v, want 1,true", row, ok)
	}
}
