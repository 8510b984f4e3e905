package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStepping(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
	clk := NewStepping(start, time.Second)

	assert.Equal(t, start, clk.Now())
	assert.Equal(t, start.Add(time.Second), clk.Now())
	assert.Equal(t, start.Add(2*time.Second), clk.Now())
}

func TestFixed(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 1, 20, 0, 0, 0, time.FixedZone("CET", 3600))
	clk := NewFixed(at)
	assert.Equal(t, time.UTC, clk.Now().Location())
	assert.True(t, clk.Now().Equal(at))
}
