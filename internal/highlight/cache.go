// Package highlight keeps the incremental syntax state cache and renders
// styled viewport windows from it.
//
// Parsing is line-resumable: the provider's state after line k is the state
// before line k+1, so the pre-line state of every Nth line is snapshotted.
// Rendering a window replays from the closest snapshot at or above the
// window instead of from the top of the document.
package highlight

import (
	"github.com/fennwick/scribe/internal/syntax"
)

// Cache maps line numbers to the provider state in effect before that line
// is parsed. Entry 0 is implicit (the provider's initial state).
type Cache struct {
	states map[int]syntax.State
	freq   int
}

// NewCache creates a cache that snapshots the state before every freq-th
// line.
func NewCache(freq int) *Cache {
	if freq < 1 {
		freq = 1
	}
	return &Cache{
		states: make(map[int]syntax.State),
		freq:   freq,
	}
}

// Frequency returns the snapshot interval.
func (c *Cache) Frequency() int { return c.freq }

// Len returns the number of stored snapshots.
func (c *Cache) Len() int { return len(c.states) }

// InvalidateFrom discards every snapshot at or below an edited line. States
// for lines above the edit stay valid because parsing is strictly
// top-to-bottom.
func (c *Cache) InvalidateFrom(line int) {
	for k := range c.states {
		if k >= line {
			delete(c.states, k)
		}
	}
}

// Clear discards all snapshots.
func (c *Cache) Clear() {
	c.states = make(map[int]syntax.State)
}

// ClosestState returns the nearest snapshot at or above line: the line it
// belongs to and a clone of its state. With no usable snapshot it returns
// line 0 and a nil state, which callers replace with the provider's initial
// state.
func (c *Cache) ClosestState(line int) (int, syntax.State) {
	best := -1
	for k := range c.states {
		if k <= line && k > best {
			best = k
		}
	}
	if best < 0 {
		return 0, nil
	}
	return best, c.states[best].Clone()
}

// put snapshots the pre-line state when the line falls on the snapshot
// interval. The state is cloned so later parsing cannot mutate the entry.
func (c *Cache) put(line int, st syntax.State) {
	if line == 0 || line%c.freq != 0 {
		return
	}
	if _, ok := c.states[line]; ok {
		return
	}
	c.states[line] = st.Clone()
}
