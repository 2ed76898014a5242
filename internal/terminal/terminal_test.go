package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netguy204/lite-edit/internal/focus"
	"github.com/netguy204/lite-edit/internal/style"
)

// lineText concatenates a row's spans and trims trailing blanks, since
// untouched cells share the row's prevailing style and coalesce into
// the same trailing span as any printed text before them.
func lineText(t *testing.T, tb *TerminalBuffer, i int) string {
	t.Helper()
	sl, ok := tb.StyledLine(i)
	require.True(t, ok)
	var s string
	for _, sp := range sl {
		s += sp.Text
	}
	return strings.TrimRight(s, " ")
}

func TestPlainTextAdvancesCursorAndMarksDirty(t *testing.T) {
	tb := NewTerminalBuffer(10, 3)
	tb.Write([]byte("hi"))
	assert.Equal(t, "hi", lineText(t, tb, 0))

	d := tb.TakeDirty()
	assert.False(t, d.None())
}

func TestCarriageReturnAndLineFeed(t *testing.T) {
	tb := NewTerminalBuffer(10, 3)
	tb.Write([]byte("ab\r\ncd"))
	assert.Equal(t, "ab", lineText(t, tb, 0))
	assert.Equal(t, "cd", lineText(t, tb, 1))
}

func TestCursorPositionCSI(t *testing.T) {
	tb := NewTerminalBuffer(10, 5)
	tb.Write([]byte("\x1b[3;4Hx"))
	ci, ok := tb.CursorInfo()
	require.True(t, ok)
	// cursor landed at row 2 (0-based), col 3, then advanced one after 'x'
	assert.Equal(t, uint32(2), ci.Position.Line)
	assert.Equal(t, uint32(4), ci.Position.Col)

	row := lineText(t, tb, 2)
	runes := []rune(row)
	require.Greater(t, len(runes), 3)
	assert.Equal(t, 'x', runes[3])
}

func TestEraseDisplayClearsFromCursor(t *testing.T) {
	tb := NewTerminalBuffer(5, 2)
	tb.Write([]byte("abcde"))
	tb.Write([]byte("\x1b[1;3H\x1b[0J"))
	assert.Equal(t, "ab", lineText(t, tb, 0))
}

func TestScrollUpMovesLinesIntoScrollback(t *testing.T) {
	tb := NewTerminalBuffer(5, 2)
	tb.Write([]byte("one\r\ntwo\r\nthree"))
	require.Equal(t, 3, tb.LineCount())
	assert.Equal(t, "one", lineText(t, tb, 0))
	assert.Equal(t, "two", lineText(t, tb, 1))
	assert.Equal(t, "three", lineText(t, tb, 2))
}

func TestSGRBoldAndColorProduceDistinctSpans(t *testing.T) {
	tb := NewTerminalBuffer(20, 2)
	tb.Write([]byte("\x1b[1mA\x1b[0mB"))
	sl, ok := tb.StyledLine(0)
	require.True(t, ok)
	require.Len(t, sl, 2)
	assert.True(t, sl[0].Style.Bold)
	assert.False(t, sl[1].Style.Bold)
}

func TestSGRNamedForegroundColor(t *testing.T) {
	tb := NewTerminalBuffer(10, 1)
	tb.Write([]byte("\x1b[31mred"))
	sl, _ := tb.StyledLine(0)
	require.Len(t, sl, 2) // "red", then the default-styled blank cells
	assert.Equal(t, style.ColorNamed, sl[0].Style.FG.Mode)
	assert.Equal(t, uint8(1), sl[0].Style.FG.Index)
}

func TestSGRTrueColorExtended(t *testing.T) {
	tb := NewTerminalBuffer(10, 1)
	tb.Write([]byte("\x1b[38;2;10;20;30mx"))
	sl, _ := tb.StyledLine(0)
	require.Len(t, sl, 1)
	assert.Equal(t, style.ColorRGB, sl[0].Style.FG.Mode)
	assert.Equal(t, uint8(10), sl[0].Style.FG.R)
	assert.Equal(t, uint8(20), sl[0].Style.FG.G)
	assert.Equal(t, uint8(30), sl[0].Style.FG.B)
}

func TestPrivateModeTogglesAppCursor(t *testing.T) {
	tb := NewTerminalBuffer(10, 3)
	tb.Write([]byte("\x1b[?1h"))
	assert.Equal(t, []byte{0x1b, 'O', 'A'}, tb.EncodeKey(0, 0, KeyUp))

	tb.Write([]byte("\x1b[?1l"))
	assert.Equal(t, []byte{0x1b, '[', 'A'}, tb.EncodeKey(0, 0, KeyUp))
}

func TestEncodeKeyCtrlLetterProducesC0Byte(t *testing.T) {
	tb := NewTerminalBuffer(10, 3)
	out := tb.EncodeKey(focus.ModCtrl, 'c', KeyNone)
	assert.Equal(t, []byte{0x03}, out)
}

func TestEncodeMouseNilWhenNoModeActive(t *testing.T) {
	tb := NewTerminalBuffer(10, 3)
	out := tb.EncodeMouse(1, 1, 0, true)
	assert.Nil(t, out)
}

func TestEncodeMouseSGRWhenModeActive(t *testing.T) {
	tb := NewTerminalBuffer(10, 3)
	tb.Write([]byte("\x1b[?1000h\x1b[?1006h"))
	out := tb.EncodeMouse(2, 3, 0, true)
	assert.Equal(t, "\x1b[<0;3;4M", string(out))
}

func TestSelectionDrivenLocallyWhenNoMouseMode(t *testing.T) {
	tb := NewTerminalBuffer(10, 3)
	tb.Write([]byte("hello\r\nworld"))
	tb.EncodeMouse(0, 0, 0, true)
	tb.EncodeMouse(4, 1, 0, false)

	text, ok := tb.CopySelection()
	require.True(t, ok)
	assert.Equal(t, "hello\nworl", text)
}

func TestNewPtyOutputClearsSelection(t *testing.T) {
	tb := NewTerminalBuffer(10, 3)
	tb.Write([]byte("hello"))
	tb.EncodeMouse(0, 0, 0, true)
	tb.EncodeMouse(4, 0, 0, false)
	_, ok := tb.SelectionRange()
	require.True(t, ok)

	tb.Write([]byte("!"))
	_, ok = tb.SelectionRange()
	assert.False(t, ok)
}

func TestBracketedPasteWrapping(t *testing.T) {
	tb := NewTerminalBuffer(10, 3)
	assert.Equal(t, []byte("hi"), tb.EncodeBracketedPaste("hi"))

	tb.Write([]byte("\x1b[?2004h"))
	assert.Equal(t, []byte("\x1b[200~hi\x1b[201~"), tb.EncodeBracketedPaste("hi"))
}

func TestWideCharacterOccupiesTwoCellsAndSkipsSpacer(t *testing.T) {
	tb := NewTerminalBuffer(10, 2)
	tb.Write([]byte("中文")) // two CJK wide chars
	sl, ok := tb.StyledLine(0)
	require.True(t, ok)
	var text string
	for _, sp := range sl {
		text += sp.Text
	}
	assert.Equal(t, "中文", strings.TrimRight(text, " "))
}
