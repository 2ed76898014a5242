package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGapBufferInsertDelete(t *testing.T) {
	gb := NewGapBuffer()
	gb.InsertStringAt(0, "hello")
	assert.Equal(t, "hello", gb.String())

	gb.InsertStringAt(5, " world")
	assert.Equal(t, "hello world", gb.String())

	gb.DeleteRange(5, 11)
	assert.Equal(t, "hello", gb.String())
}

func TestGapBufferMoveGapCopiesMinimalRun(t *testing.T) {
	gb := NewGapBufferFromString("abcdefgh")
	gb.MoveGapTo(3)
	gb.InsertAt(3, 'X')
	assert.Equal(t, "abcXdefgh", gb.String())
}

// A non-structural edit patched into the index must leave it identical
// to a full rebuild.
func TestLineIndexPatchMatchesRebuild(t *testing.T) {
	gb := NewGapBufferFromString("ab\ncde\nf")
	var patched LineIndex
	patched.Rebuild(gb)

	// insert two runes mid-line-1
	gb.InsertStringAt(4, "XY")
	patched.Patch(4, 2)

	var rebuilt LineIndex
	rebuilt.Rebuild(gb)
	assert.Equal(t, rebuilt, patched)

	// delete one rune from line 0
	gb.DeleteRange(1, 2)
	patched.Patch(1, -1)
	rebuilt.Rebuild(gb)
	assert.Equal(t, rebuilt, patched)
}

func TestLineIndexBasics(t *testing.T) {
	gb := NewGapBufferFromString("ab\ncde\nf")
	var li LineIndex
	li.Rebuild(gb)

	assert.Equal(t, 3, li.LineCount())
	assert.Equal(t, 0, li.LineToOffset(0))
	assert.Equal(t, 3, li.LineToOffset(1))
	assert.Equal(t, 7, li.LineToOffset(2))
	assert.Equal(t, 2, li.LineLen(0, gb))
	assert.Equal(t, 3, li.LineLen(1, gb))
	assert.Equal(t, 1, li.LineLen(2, gb))
	assert.Equal(t, 1, li.OffsetToLine(4))
}
