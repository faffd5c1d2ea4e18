package hconsole

import (
	"iter"
	"maps"
	"slices"
)

// DefaultLabel is used by count() and countReset() when no label is given.
const DefaultLabel = "default"

// Counters maps a label to its count. Labels are never removed, a reset
// only sets the count back to zero.
type Counters struct {
	m map[string]uint64
}

// Increment bumps the count for label, creating it at 1, and returns the
// new value.
func (c *Counters) Increment(label string) uint64 {
	if c.m == nil {
		c.m = map[string]uint64{}
	}

	n, ok := c.m[label]
	if ok {
		n++
	} else {
		n = 1
	}
	c.m[label] = n

	return n
}

// Reset zeroes an existing label. It reports false if the label was never
// counted.
func (c *Counters) Reset(label string) bool {
	if _, ok := c.m[label]; !ok {
		return false
	}

	c.m[label] = 0

	return true
}

func (c *Counters) Get(label string) (uint64, bool) {
	n, ok := c.m[label]

	return n, ok
}

func (c *Counters) Len() int {
	return len(c.m)
}

// Sorted iterates over the labels in lexical order.
func (c *Counters) Sorted() iter.Seq2[string, uint64] {
	return func(yield func(string, uint64) bool) {
		for _, label := range slices.Sorted(maps.Keys(c.m)) {
			if !yield(label, c.m[label]) {
				return
			}
		}
	}
}
