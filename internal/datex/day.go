// Package datex handles calendar days at day granularity. Journal entries are
// keyed by "yyyy-mm-dd" day strings; because that layout sorts
// lexicographically, day strings can be compared with plain string operators.
package datex

import (
	"fmt"
	"time"
)

// DayLayout is the wire format for calendar days.
const DayLayout = "2006-01-02"

// FormatDay returns the "yyyy-mm-dd" day string of t in t's location.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a "yyyy-mm-dd" day string. The returned time is midnight UTC
// of that day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// IsValidDay reports whether s is a well-formed "yyyy-mm-dd" day string.
func IsValidDay(s string) bool {
	_, err := ParseDay(s)
	return err == nil
}

// AddDays shifts a day string by n calendar days (n may be negative).
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return FormatDay(t.AddDate(0, 0, n)), nil
}

// DayStartMillis returns the epoch milliseconds of midnight of t's day,
// in t's location. This is the entry timestamp the wire format carries.
func DayStartMillis(t time.Time) int64 {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start.UnixMilli()
}
