package terminal

import (
	"strings"
	"sync"

	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/style"
)

// TerminalBuffer implements bufferview.BufferView over a VT grid. A
// background PTY reader (Session) queues bytes that the main thread
// feeds in through Write, and the main thread also reads StyledLines.
//
// The grid is guarded by mu, taken once per method call (so once per
// line when the renderer reads StyledLine).
type TerminalBuffer struct {
	mu sync.Mutex

	g          *grid
	scrollback [][]cell
	cursorX    int
	cursorY    int

	cur   style.Style
	saved style.Style
	savedX, savedY int
	hasSaved       bool

	modes Mode
	dirtyAll bool

	anchor     style.Position
	head       style.Position
	hasSel     bool
	selecting  bool

	parser  *AnsiParser
	onWrite func([]byte) // PTY write sink, set by the host wiring EncodeKey's output
	exited  bool
	exitErr error
}

// NewTerminalBuffer creates a grid of the given size. cols/rows must
// be set from the pane's content-area size before first render; a
// zero-sized grid makes scroll-to-bottom mis-scroll past content.
func NewTerminalBuffer(cols, rows int) *TerminalBuffer {
	tb := &TerminalBuffer{cur: style.Default()}
	tb.g = newGrid(cols, rows, tb.cur)
	tb.parser = NewAnsiParser()
	tb.parser.OnPrint = tb.handlePrint
	tb.parser.OnExecute = tb.handleExecute
	tb.parser.OnCsi = tb.handleCsi
	tb.parser.OnOsc = tb.handleOsc
	tb.parser.OnEscape = tb.handleEscape
	return tb
}

// Write feeds PTY output bytes through the ANSI parser. Called from the
// main thread during the drain phase, never from the
// reader goroutine directly.
func (tb *TerminalBuffer) Write(data []byte) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.clearSelection()
	tb.parser.Parse(data)
}

// SetWriteSink installs the function EncodeKey/EncodeMouse output is
// delivered to (the PTY's stdin), used by WriteToPTY.
func (tb *TerminalBuffer) SetWriteSink(w func([]byte)) { tb.onWrite = w }

// MarkExited records that the child process has ended, so the tab can
// show itself as process-exited.
func (tb *TerminalBuffer) MarkExited(err error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.exited = true
	tb.exitErr = err
}

// Exited reports whether the backing process has ended.
func (tb *TerminalBuffer) Exited() (bool, error) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.exited, tb.exitErr
}

// Resize rebuilds the grid at new dimensions.
func (tb *TerminalBuffer) Resize(cols, rows int) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if cols == tb.g.cols && rows == tb.g.rows {
		return
	}
	tb.g.resize(cols, rows, tb.cur)
	if tb.cursorX >= cols {
		tb.cursorX = cols - 1
	}
	if tb.cursorY >= rows {
		tb.cursorY = rows - 1
	}
}

// --- bufferview.BufferView ---

func (tb *TerminalBuffer) LineCount() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.scrollback) + tb.g.rows
}

func (tb *TerminalBuffer) StyledLine(i int) (style.StyledLine, bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if i < 0 {
		return nil, false
	}
	if i < len(tb.scrollback) {
		return styledRow(tb.scrollback[i]), true
	}
	row := i - len(tb.scrollback)
	if row >= tb.g.rows {
		return nil, false
	}
	return styledRow(tb.g.cells[row]), true
}

// TakeDirty reports every line touched since the last call as a single
// range (the grid doesn't track the fine-grained Single/FromLineToEnd
// distinction text buffers do — any VT operation can touch an arbitrary
// row set, so it collapses to a conservative range or full-viewport
// union, matching DirtyLines' own merge algebra).
func (tb *TerminalBuffer) TakeDirty() buffer.DirtyLines {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if tb.dirtyAll {
		tb.dirtyAll = false
		tb.clearGridDirty()
		return buffer.FromLineToEnd(0)
	}

	var d buffer.DirtyLines
	base := uint32(len(tb.scrollback))
	for row, isDirty := range tb.g.dirty {
		if isDirty {
			d = buffer.Union(d, buffer.Single(base+uint32(row)))
		}
	}
	tb.clearGridDirty()
	return d
}

func (tb *TerminalBuffer) clearGridDirty() {
	for i := range tb.g.dirty {
		tb.g.dirty[i] = false
	}
	tb.g.anyDirty = false
}

func (tb *TerminalBuffer) IsEditable() bool { return false }

func (tb *TerminalBuffer) CursorInfo() (style.CursorInfo, bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return style.CursorInfo{
		Position: style.Position{Line: uint32(len(tb.scrollback) + tb.cursorY), Col: uint32(tb.cursorX)},
		Shape:    style.CursorBlock,
		Blinking: true,
	}, true
}

func (tb *TerminalBuffer) SelectionRange() (style.Position, style.Position, bool) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if !tb.hasSel {
		return style.Position{}, style.Position{}, false
	}
	if tb.head.Less(tb.anchor) {
		return tb.head, tb.anchor, true
	}
	return tb.anchor, tb.head, true
}

// clearSelection drops the selection on new PTY output. Must be
// called with mu held.
func (tb *TerminalBuffer) clearSelection() {
	tb.hasSel = false
	tb.selecting = false
}

// --- selection-over-grid, driven by TerminalTarget's raw mouse events
// when no mouse-reporting mode is active ---

// BeginSelection starts a selection drag at the given viewport-relative
// grid position (row 0 is the top of the currently visible grid, not
// the top of scrollback — it is converted to StyledLine's absolute line
// addressing internally).
func (tb *TerminalBuffer) BeginSelection(viewportPos style.Position) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	pos := tb.toAbsolute(viewportPos)
	tb.anchor = pos
	tb.head = pos
	tb.hasSel = true
	tb.selecting = true
}

// ExtendSelection moves the selection head during a drag.
func (tb *TerminalBuffer) ExtendSelection(viewportPos style.Position) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	if !tb.selecting {
		return
	}
	tb.head = tb.toAbsolute(viewportPos)
}

// toAbsolute converts a viewport-relative position to StyledLine's
// absolute addressing (scrollback lines first, then the live grid).
// Must be called with mu held.
func (tb *TerminalBuffer) toAbsolute(viewportPos style.Position) style.Position {
	return style.Position{Line: uint32(len(tb.scrollback)) + viewportPos.Line, Col: viewportPos.Col}
}

// EndSelection stops tracking drag motion; the selection itself
// persists until the next PTY write.
func (tb *TerminalBuffer) EndSelection() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.selecting = false
}

// CopySelection joins the selected rows with newlines, trimming
// trailing spaces per line.
func (tb *TerminalBuffer) CopySelection() (string, bool) {
	from, to, ok := tb.SelectionRange()
	if !ok {
		return "", false
	}
	var b strings.Builder
	for line := from.Line; line <= to.Line; line++ {
		sl, ok := tb.StyledLine(int(line))
		if !ok {
			continue
		}
		text := spanText(sl)
		startCol, endCol := 0, len([]rune(text))
		if line == from.Line {
			startCol = int(from.Col)
		}
		if line == to.Line {
			endCol = int(to.Col)
		}
		runes := []rune(text)
		if startCol > len(runes) {
			startCol = len(runes)
		}
		if endCol > len(runes) {
			endCol = len(runes)
		}
		if startCol < endCol {
			b.WriteString(strings.TrimRight(string(runes[startCol:endCol]), " "))
		}
		if line != to.Line {
			b.WriteByte('\n')
		}
	}
	return b.String(), true
}

func spanText(sl style.StyledLine) string {
	var b strings.Builder
	for _, sp := range sl {
		b.WriteString(sp.Text)
	}
	return b.String()
}
