package render

import (
	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/style"
)

// lineCache is the per-pane StyledLine cache: a slice of optional
// styled lines indexed by buffer line, consulted on each frame before
// falling back to BufferView.StyledLine. Invalidation follows the
// dirty-line tag exactly: Single invalidates one slot, Range a slice,
// FromLineToEnd truncates the cache from that line on.
type lineCache struct {
	lines []cacheSlot
}

type cacheSlot struct {
	line  style.StyledLine
	valid bool
}

// Get returns the cached StyledLine for buffer line i, if present.
func (c *lineCache) Get(i int) (style.StyledLine, bool) {
	if i < 0 || i >= len(c.lines) {
		return nil, false
	}
	s := c.lines[i]
	return s.line, s.valid
}

// Put stores line as the cached entry for buffer line i, growing the
// backing slice as needed.
func (c *lineCache) Put(i int, line style.StyledLine) {
	if i < 0 {
		return
	}
	for len(c.lines) <= i {
		c.lines = append(c.lines, cacheSlot{})
	}
	c.lines[i] = cacheSlot{line: line, valid: true}
}

// Invalidate applies a DirtyLines delta from TakeDirty to the cache.
func (c *lineCache) Invalidate(d buffer.DirtyLines) {
	switch d.Kind {
	case buffer.DirtyNone:
		return
	case buffer.DirtySingle:
		c.invalidateOne(int(d.From))
	case buffer.DirtyRange:
		for i := d.From; i <= d.To; i++ {
			c.invalidateOne(int(i))
		}
	case buffer.DirtyFromLineToEnd:
		if int(d.From) < len(c.lines) {
			c.lines = c.lines[:d.From]
		}
	}
}

func (c *lineCache) invalidateOne(i int) {
	if i >= 0 && i < len(c.lines) {
		c.lines[i] = cacheSlot{}
	}
}
