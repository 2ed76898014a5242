package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/style"
)

func line(s string) style.StyledLine {
	return style.StyledLine{{Text: s, Style: style.Default()}}
}

func TestLineCacheGetPutRoundTrip(t *testing.T) {
	var c lineCache
	_, ok := c.Get(0)
	assert.False(t, ok)

	c.Put(2, line("hello"))
	got, ok := c.Get(2)
	assert.True(t, ok)
	assert.Equal(t, line("hello"), got)

	_, ok = c.Get(1)
	assert.False(t, ok, "Put growing the slice must not fabricate entries for skipped indices")
}

func TestLineCacheInvalidateSingle(t *testing.T) {
	var c lineCache
	c.Put(0, line("a"))
	c.Put(1, line("b"))
	c.Invalidate(buffer.DirtyLines{Kind: buffer.DirtySingle, From: 1})

	_, ok := c.Get(0)
	assert.True(t, ok)
	_, ok = c.Get(1)
	assert.False(t, ok)
}

func TestLineCacheInvalidateRange(t *testing.T) {
	var c lineCache
	for i := 0; i < 5; i++ {
		c.Put(i, line("x"))
	}
	c.Invalidate(buffer.DirtyLines{Kind: buffer.DirtyRange, From: 1, To: 3})

	for i, want := range []bool{true, false, false, false, true} {
		_, ok := c.Get(i)
		assert.Equal(t, want, ok, "line %d", i)
	}
}

func TestLineCacheInvalidateFromLineToEnd(t *testing.T) {
	var c lineCache
	for i := 0; i < 5; i++ {
		c.Put(i, line("x"))
	}
	c.Invalidate(buffer.DirtyLines{Kind: buffer.DirtyFromLineToEnd, From: 2})

	for i, want := range []bool{true, true, false, false, false} {
		_, ok := c.Get(i)
		assert.Equal(t, want, ok, "line %d", i)
	}
}

func TestLineCacheInvalidateNoneIsNoop(t *testing.T) {
	var c lineCache
	c.Put(0, line("a"))
	c.Invalidate(buffer.DirtyLines{Kind: buffer.DirtyNone})
	_, ok := c.Get(0)
	assert.True(t, ok)
}
