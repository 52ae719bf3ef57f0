package journal

import (
	"time"

	"github.com/daybook-app/daybook/internal/datex"
)

// Direction of a single-day cursor step.
type Direction string

const (
	DirectionPrevious Direction = "previous"
	DirectionNext     Direction = "next"
)

// Cursor tracks the calendar day currently being viewed. Backward navigation
// is unbounded; forward navigation clamps silently at today, so the cursor
// can never point into the future. The clock is injected for tests.
type Cursor struct {
	day string
	now func() time.Time
}

// NewCursor returns a cursor positioned on today according to now.
func NewCursor(now func() time.Time) *Cursor {
	if now == nil {
		now = time.Now
	}
	return &Cursor{day: datex.FormatDay(now()), now: now}
}

// Current returns the day the cursor points at.
func (c *Cursor) Current() string {
	return c.day
}

// Today returns the current wall-clock day.
func (c *Cursor) Today() string {
	return datex.FormatDay(c.now())
}

// Set replaces the cursor day unconditionally. Only well-formedness is
// checked; jumping to a past or future day is the caller's decision
// (used for jump-to-date and search-result navigation).
func (c *Cursor) Set(day string) error {
	if !datex.IsValidDay(day) {
		return ErrValidation
	}
	c.day = day
	return nil
}

// Step moves the cursor one day. Previous always moves; next moves only while
// the result stays at or before today, otherwise the cursor is left unchanged.
// The clamp is silent: it reports whether the cursor moved, and the UI is
// expected to disable the forward control when already at today.
func (c *Cursor) Step(dir Direction) bool {
	switch dir {
	case DirectionPrevious:
		day, err := datex.AddDays(c.day, -1)
		if err != nil {
			return false
		}
		c.day = day
		return true
	case DirectionNext:
		day, err := datex.AddDays(c.day, 1)
		if err != nil {
			return false
		}
		if day > c.Today() {
			return false
		}
		c.day = day
		return true
	default:
		return false
	}
}
