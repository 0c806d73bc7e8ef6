package core

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateKey is the internal sortable form of a calendar date. It is used for
// ordering and equality only; display always goes through the original
// header label or FormatHeaderLabel.
type DateKey struct {
	time.Time
}

var (
	ErrInvalidDate = errors.New("invalid date")

	commandDateRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`)
	headerDateRe  = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})$`)
)

// NewDateKey builds a DateKey for year, month, day at UTC midnight.
func NewDateKey(year, month, day int) DateKey {
	return DateKey{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseCommandDate parses a user-supplied date in MM/DD/YY form. Month and
// day may be one or two digits, the year must be exactly two digits and is
// expanded as 2000+YY. Calendar-inconsistent triples (02/30/26, 13/01/26)
// are rejected rather than normalized.
func ParseCommandDate(raw string) (DateKey, error) {
	m := commandDateRe.FindStringSubmatch(raw)
	if m == nil {
		return DateKey{}, fmt.Errorf("%w: %q (want MM/DD/YY)", ErrInvalidDate, raw)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	yy, _ := strconv.Atoi(m[3])
	return dateKeyChecked(2000+yy, month, day, raw)
}

// ParseHeaderDate parses an existing column-header label. Headers may carry a
// two- or four-digit year since both forms have been written over time.
func ParseHeaderDate(raw string) (DateKey, error) {
	m := headerDateRe.FindStringSubmatch(raw)
	if m == nil {
		return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	return dateKeyChecked(year, month, day, raw)
}

// dateKeyChecked round-trips the triple through time.Date and rejects input
// that the calendar normalized (time.Date turns Feb 30 into Mar 1/2).
func dateKeyChecked(year, month, day int, raw string) (DateKey, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return DateKey{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidDate, raw)
	}
	return DateKey{Time: t}, nil
}

// FormatHeaderLabel renders the label form the upsert engine writes:
// unpadded month and day, zero-padded two-digit year (M/D/YY).
func FormatHeaderLabel(k DateKey) string {
	return fmt.Sprintf("%d/%d/%02d", int(k.Month()), k.Day(), k.Year()%100)
}

// Before reports whether k sorts strictly before other.
func (k DateKey) Before(other DateKey) bool {
	return k.Time.Before(other.Time)
}

// Equal reports whether two keys denote the same date.
func (k DateKey) Equal(other DateKey) bool {
	return k.Time.Equal(other.Time)
}
