package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A full grapheme cluster backspaces in one go.
func TestDeleteBackwardRemovesWholeGraphemeCluster(t *testing.T) {
	family := "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466" // family emoji, one grapheme
	tb := NewTextBufferFromString(family)
	tb.MoveCursor(Position{Line: 0, Col: uint32(len([]rune(family)))})

	tb.DeleteBackward()

	assert.Equal(t, "", tb.String())
	assert.Equal(t, Position{Line: 0, Col: 0}, tb.Cursor())
}

// A CRLF pair is one grapheme cluster: backspacing it joins the lines
// in a single keystroke and lands the cursor at the join point.
func TestDeleteBackwardRemovesCRLFAsOneCluster(t *testing.T) {
	tb := NewTextBufferFromString("ab\r\ncd")
	tb.MoveCursor(Position{Line: 1, Col: 0})

	delta := tb.DeleteBackward()

	assert.Equal(t, "abcd", tb.String())
	assert.Equal(t, Position{Line: 0, Col: 2}, tb.Cursor())
	assert.Equal(t, DirtyFromLineToEnd, delta.Kind)
}

func TestDeleteBackwardAtOriginIsNoOp(t *testing.T) {
	tb := NewTextBufferFromString("hello")
	tb.MoveCursor(Position{Line: 0, Col: 0})
	delta := tb.DeleteBackward()
	assert.True(t, delta.None())
	assert.Equal(t, "hello", tb.String())
}

func TestMoveGraphemeRightAtEndOfDocumentIsNoOp(t *testing.T) {
	tb := NewTextBufferFromString("hi")
	end := Position{Line: 0, Col: 2}
	got := tb.MoveGraphemeRight(end)
	assert.Equal(t, end, got)
}

func TestInsertNewlineDirtiesFromLineToEnd(t *testing.T) {
	tb := NewTextBufferFromString("ab\ncd")
	tb.MoveCursor(Position{Line: 0, Col: 1})
	delta := tb.InsertChar('\n')
	require.Equal(t, DirtyFromLineToEnd, delta.Kind)
	assert.Equal(t, uint32(0), delta.From)
	assert.Equal(t, 3, tb.LineCount())
	assert.Equal(t, Position{Line: 1, Col: 0}, tb.Cursor())
}

func TestInsertPlainCharDirtiesSingleLine(t *testing.T) {
	tb := NewTextBufferFromString("ab")
	tb.MoveCursor(Position{Line: 0, Col: 1})
	delta := tb.InsertChar('X')
	require.Equal(t, DirtySingle, delta.Kind)
	assert.Equal(t, "aXb", tb.String())
}

// Insert-then-delete-one-grapheme round-trips byte-exact.
func TestInsertDeleteRoundTrip(t *testing.T) {
	tb := NewTextBufferFromString("hello world")
	before := tb.String()
	tb.MoveCursor(Position{Line: 0, Col: 5})
	tb.InsertChar('!')
	tb.MoveCursor(Position{Line: 0, Col: 6})
	tb.DeleteBackward()
	assert.Equal(t, before, tb.String())
}

func TestLineCountTracksNewlineDelta(t *testing.T) {
	tb := NewTextBufferFromString("a\nb\nc")
	require.Equal(t, 3, tb.LineCount())
	tb.MoveCursor(Position{Line: 1, Col: 1})
	tb.InsertChar('\n')
	assert.Equal(t, 4, tb.LineCount())
}

func TestWordBoundaries(t *testing.T) {
	runes := []rune("foo_bar  baz")
	assert.Equal(t, 0, WordBoundaryLeft(runes, 7))
	assert.Equal(t, 7, WordBoundaryRight(runes, 0))
	assert.Equal(t, 7, WordBoundaryLeft(runes, 9)) // inside whitespace run
}

func TestSelectWordAtEmptyLineClearsSelection(t *testing.T) {
	tb := NewTextBufferFromString("foo\n\nbar")
	tb.SetSelectionAnchor(Position{Line: 0, Col: 0})
	tb.SelectWordAt(1, 0)
	assert.False(t, tb.HasSelection())
}

func TestSelectWordAtExpandsAroundColumn(t *testing.T) {
	tb := NewTextBufferFromString("hello world")
	tb.SelectWordAt(0, 7)
	start, end, ok := tb.SelectionRange()
	require.True(t, ok)
	assert.Equal(t, Position{Line: 0, Col: 6}, start)
	assert.Equal(t, Position{Line: 0, Col: 11}, end)
}

func TestDeleteRangeCollapsesCursorToStart(t *testing.T) {
	tb := NewTextBufferFromString("abcdef")
	tb.DeleteRange(Position{Line: 0, Col: 1}, Position{Line: 0, Col: 4})
	assert.Equal(t, "aef", tb.String())
	assert.Equal(t, Position{Line: 0, Col: 1}, tb.Cursor())
}
