package extract

import (
	"errors"
	"testing"

	"culvert/internal/core"
)

func TestDecodeEntriesDirectArray(t *testing.T) {
	entries, err := DecodeEntries(`[{"Name":"Alice","Culvert":"12,345"},{"Name":"Bob","Culvert":500}]`)
	if err != nil {
		t.Fatal(err)
	}
	want := []core.ScoreEntry{{Name: "Alice", Value: "12,345"}, {Name: "Bob", Value: "500"}}
	if len(entries) != 2 || entries[0] != want[0] || entries[1] != want[1] {
		t.Fatalf("entries = %+v, want %+v", entries, want)
	}
}

func TestDecodeEntriesOutputEnvelope(t *testing.T) {
	raw := `{"output":"[{\"Name\":\"Alice\",\"Culvert\":\"100\"}]"}`
	entries, err := DecodeEntries(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "Alice" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestDecodeEntriesFencedBlock(t *testing.T) {
	raw := "Here are the rows:\n```json\n[{\"Name\":\"Alice\",\"Culvert\":\"100\"}]\n```\nDone."
	entries, err := DecodeEntries(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Value != "100" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestDecodeEntriesBracketSlice(t *testing.T) {
	raw := `The table contains [{"Name":"Alice","Culvert":"100"}] as requested.`
	entries, err := DecodeEntries(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestDecodeEntriesRowsObject(t *testing.T) {
	entries, err := DecodeEntries(`{"rows":[{"name":"alice","culvert":"1"},{"name":"bob","culvert":"2"}]}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestDecodeEntriesBareObject(t *testing.T) {
	entries, err := DecodeEntries(`{"Name":"Alice","Culvert":"100"}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "Alice" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestDecodeEntriesKeyPriority(t *testing.T) {
	// Exact-case keys win over lowercase when both are present.
	entries, err := DecodeEntries(`[{"Name":"Alice","name":"wrong","Culvert":"1","culvert":"9"}]`)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Name != "Alice" || entries[0].Value != "1" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestDecodeEntriesDropsIncompleteRows(t *testing.T) {
	entries, err := DecodeEntries(`[
		{"Name":"Alice","Culvert":"100"},
		{"Name":"  ","Culvert":"5"},
		{"Name":"Bob"},
		{"Culvert":"7"}
	]`)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name != "Alice" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestDecodeEntriesNoUsableInput(t *testing.T) {
	for _, raw := range []string{"", "no json here", `[{"Name":" ","Culvert":""}]`} {
		if _, err := DecodeEntries(raw); !errors.Is(err, ErrNoEntries) {
			t.Fatalf("DecodeEntries(%q): err = %v, want ErrNoEntries", raw, err)
		}
	}
}
