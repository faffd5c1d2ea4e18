package hconsole

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	var c Counters

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.False(t, c.Reset("a"))

	assert.Equal(t, uint64(1), c.Increment("b"))
	assert.Equal(t, uint64(2), c.Increment("b"))
	assert.Equal(t, uint64(1), c.Increment("a"))

	assert.True(t, c.Reset("b"))
	n, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, uint64(0), n)
	assert.Equal(t, 2, c.Len())

	var labels []string
	var counts []uint64
	for label, n := range c.Sorted() {
		labels = append(labels, label)
		counts = append(counts, n)
	}
	assert.Equal(t, []string{"a", "b"}, labels)
	assert.Equal(t, []uint64{1, 0}, counts)
}
