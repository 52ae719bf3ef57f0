package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisCache_MissThenHit(t *testing.T) {
	c := NewAnalysisCache()

	_, ok := c.Get("2024-01-10")
	assert.False(t, ok)

	c.Put("2024-01-10", "a calm day")
	text, ok := c.Get("2024-01-10")
	assert.True(t, ok)
	assert.Equal(t, "a calm day", text)

	// other days are independent
	_, ok = c.Get("2024-01-11")
	assert.False(t, ok)
}

func TestAnalysisCache_PutOverwrites(t *testing.T) {
	c := NewAnalysisCache()
	c.Put("2024-01-10", "first")
	c.Put("2024-01-10", "second")

	text, ok := c.Get("2024-01-10")
	assert.True(t, ok)
	assert.Equal(t, "second", text)
}

func TestAnalysisCache_Reset(t *testing.T) {
	c := NewAnalysisCache()
	c.Put("2024-01-10", "text")
	c.Reset()

	_, ok := c.Get("2024-01-10")
	assert.False(t, ok)
}
