package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow(day string) func() time.Time {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		panic(err)
	}
	// mid-day so day-boundary math is obvious
	t = t.Add(12 * time.Hour)
	return func() time.Time { return t }
}

func TestCursor_StartsOnToday(t *testing.T) {
	c := NewCursor(fixedNow("2024-01-10"))
	assert.Equal(t, "2024-01-10", c.Current())
	assert.Equal(t, "2024-01-10", c.Today())
}

func TestCursor_StepPreviousIsUnbounded(t *testing.T) {
	c := NewCursor(fixedNow("2024-01-02"))
	for _, want := range []string{"2024-01-01", "2023-12-31", "2023-12-30"} {
		assert.True(t, c.Step(DirectionPrevious))
		assert.Equal(t, want, c.Current())
	}
}

func TestCursor_StepNextClampsAtToday(t *testing.T) {
	c := NewCursor(fixedNow("2024-01-10"))
	require.NoError(t, c.Set("2024-01-08"))

	assert.True(t, c.Step(DirectionNext))
	assert.Equal(t, "2024-01-09", c.Current())
	assert.True(t, c.Step(DirectionNext))
	assert.Equal(t, "2024-01-10", c.Current())

	// at today: next is a silent no-op
	assert.False(t, c.Step(DirectionNext))
	assert.Equal(t, "2024-01-10", c.Current())
}

func TestCursor_StepNextNeverPassesToday(t *testing.T) {
	c := NewCursor(fixedNow("2024-03-01"))
	require.NoError(t, c.Set("2024-02-20"))

	for i := 0; i < 30; i++ {
		c.Step(DirectionNext)
		assert.LessOrEqual(t, c.Current(), c.Today())
	}
	assert.Equal(t, "2024-03-01", c.Current())
}

func TestCursor_SetValidatesWellFormednessOnly(t *testing.T) {
	c := NewCursor(fixedNow("2024-01-10"))

	// future days are accepted by Set; only Step enforces the clamp
	require.NoError(t, c.Set("2030-05-05"))
	assert.Equal(t, "2030-05-05", c.Current())

	err := c.Set("not-a-date")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "2030-05-05", c.Current(), "cursor unchanged on bad input")
}
