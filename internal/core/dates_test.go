package core

import (
	"errors"
	"testing"
)

func TestParseCommandDate(t *testing.T) {
	cases := []struct {
		raw  string
		want DateKey
		ok   bool
	}{
		{"3/1/24", NewDateKey(2024, 3, 1), true},
		{"02/05/26", NewDateKey(2026, 2, 5), true},
		{"2/5/26", NewDateKey(2026, 2, 5), true},
		{"12/31/99", NewDateKey(2099, 12, 31), true},
		{"02/30/26", DateKey{}, false}, // February has no 30th
		{"13/01/26", DateKey{}, false},
		{"2/5/2026", DateKey{}, false}, // four-digit year not accepted here
		{"2-5-26", DateKey{}, false},
		{"", DateKey{}, false},
	}
	for _, tc := range cases {
		got, err := ParseCommandDate(tc.raw)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseCommandDate(%q): %v", tc.raw, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("ParseCommandDate(%q) = %v, want %v", tc.raw, got, tc.want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("ParseCommandDate(%q): expected error", tc.raw)
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseCommandDate(%q): error %v is not ErrInvalidDate", tc.raw, err)
		}
	}
}

func TestParseHeaderDateAcceptsBothYearForms(t *testing.T) {
	short, err := ParseHeaderDate("3/1/24")
	if err != nil {
		t.Fatalf("short year: %v", err)
	}
	long, err := ParseHeaderDate("3/1/2024")
	if err != nil {
		t.Fatalf("long year: %v", err)
	}
	if !short.Equal(long) {
		t.Fatalf("2- and 4-digit years disagree: %v vs %v", short, long)
	}
	if _, err := ParseHeaderDate("Name"); err == nil {
		t.Fatal("expected error for non-date header")
	}
}

func TestHeaderLabelRoundTrip(t *testing.T) {
	for _, raw := range []string{"1/1/24", "02/05/26", "12/31/99", "6/9/31"} {
		key, err := ParseCommandDate(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		label := FormatHeaderLabel(key)
		back, err := ParseHeaderDate(label)
		if err != nil {
			t.Fatalf("reparse %q: %v", label, err)
		}
		if !back.Equal(key) {
			t.Fatalf("round trip %q -> %q: %v != %v", raw, label, back, key)
		}
	}
}

func TestFormatHeaderLabelUnpadded(t *testing.T) {
	got := FormatHeaderLabel(NewDateKey(2024, 3, 1))
	if got != "3/1/24" {
		t.Fatalf("FormatHeaderLabel = %q, want 3/1/24", got)
	}
}
