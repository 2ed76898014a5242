package focus

import (
	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/panetree"
	"github.com/netguy204/lite-edit/internal/region"
	"github.com/netguy204/lite-edit/internal/style"
	"github.com/netguy204/lite-edit/internal/viewport"
)

// Clipboard is the narrow system-clipboard contract a BufferTarget needs
// for copy/cut/paste. The concrete implementation lives in
// internal/platform.
type Clipboard interface {
	Get() (string, error)
	Set(string) error
}

// BufferIO is the narrow save contract a BufferTarget needs for
// CmdSave. The concrete implementation lives
// above the core (cmd/lite-edit), which knows the tab's path; the
// target only needs to know whether the write succeeded, to decide
// whether to clear the modified flag or surface an IoError.
type BufferIO interface {
	Save(text string) error
}

// BufferTarget is the FocusTarget for an editable text pane: it resolves
// chords via ResolveBufferChord and applies the resulting Command to the
// pane's TextBuffer and Viewport. Mouse clicks hit-test through the
// Viewport to place the cursor; double-clicks select the word under the
// cursor.
type BufferTarget struct {
	Pane      *panetree.Node // the leaf this target belongs to; nil once detached
	Buf       *buffer.TextBuffer
	Clipboard Clipboard
	IO        BufferIO // nil means CmdSave is a no-op (e.g. scratch buffers)

	// CellWidthPx is the monospace advance used to map a click's X to a
	// column; zero falls back to 1 (the terminal host's cell width).
	CellWidthPx float32

	// Keymap holds config-driven chord overrides, consulted before the
	// built-in defaults; nil means defaults only.
	Keymap Keymap

	// OnStatus surfaces a user-visible message for a save error or other
	// non-fatal failure.
	OnStatus func(msg string)

	// OnOpenFileSelector/OnOpenFindStrip push the corresponding overlay
	// (SelectorTarget/FindStripTarget) onto the focus stack; set by
	// whoever wires this target up, since building a SelectorTarget
	// needs a FileIndex the buffer layer has no business knowing about.
	OnOpenFileSelector func(ctx *EditorContext)
	OnOpenFindStrip    func(ctx *EditorContext)

	// OnOpenTerminal opens a PTY-backed terminal tab in this pane; set by
	// the application wiring, which owns session lifecycle.
	OnOpenTerminal func(ctx *EditorContext)

	// OnCloseRequest is invoked for CmdClosePane. It is responsible for
	// raising the ConfirmDialogTarget when the buffer is modified and
	// closing the pane/tab directly otherwise.
	OnCloseRequest func(ctx *EditorContext)

	lastClickPos style.Position
}

func (t *BufferTarget) Name() string { return "buffer" }
func (t *BufferTarget) Activate()    {}
func (t *BufferTarget) Deactivate()  {}

func (t *BufferTarget) tab() *panetree.Tab {
	if t.Pane == nil || !t.Pane.IsLeaf() {
		return nil
	}
	return t.Pane.Leaf.Tabs[t.Pane.Leaf.ActiveTab]
}

func (t *BufferTarget) HandleKey(ev KeyEvent, ctx *EditorContext) Handled {
	cmd := ResolveChord(ev, t.Keymap)
	if cmd.Kind == CmdNone {
		return No
	}
	if cmd.Kind == CmdSplitPane || cmd.Kind == CmdMoveTab || cmd.Kind == CmdFocusPane {
		return t.dispatchPaneCommand(cmd, ctx)
	}
	switch cmd.Kind {
	case CmdSave:
		t.save()
		ctx.MarkDirty(region.Full())
		return Yes
	case CmdOpenFileSelector:
		if t.OnOpenFileSelector != nil {
			t.OnOpenFileSelector(ctx)
		}
		ctx.MarkDirty(region.Full())
		return Yes
	case CmdOpenFindStrip:
		if t.OnOpenFindStrip != nil {
			t.OnOpenFindStrip(ctx)
		}
		ctx.MarkDirty(region.Full())
		return Yes
	case CmdOpenTerminal:
		if t.OnOpenTerminal != nil {
			t.OnOpenTerminal(ctx)
		}
		ctx.MarkDirty(region.Full())
		return Yes
	case CmdClosePane:
		if t.OnCloseRequest != nil {
			t.OnCloseRequest(ctx)
		}
		ctx.MarkDirty(region.Full())
		return Yes
	}
	oldStart, oldEnd, hadSel := t.Buf.SelectionRange()
	before := t.Buf.Cursor()
	delta := t.apply(cmd)
	after := t.Buf.Cursor()
	tb := t.tab()
	if tb == nil {
		ctx.MarkDirty(region.Full())
		return Yes
	}
	prevScroll := tb.Viewport.ScrollOffsetPx
	tb.Viewport = tb.Viewport.EnsureCursorVisible(int(after.Line), func(i int) int { return t.Buf.LineLen(i) })
	if tb.Viewport.ScrollOffsetPx != prevScroll || !treeIsLeaf(ctx) {
		// scrolling shifts every visible row; multi-pane layouts repaint
		// fully since projected rows are viewport rows, not screen rows
		ctx.MarkDirty(region.Full())
		return Yes
	}
	ctx.MarkDirty(t.regionFor(tb, delta))
	// the cursor's old and new rows (and the rows between, for a jump)
	ctx.MarkDirty(t.regionFor(tb, buffer.LineRange(before.Line, after.Line)))
	// any rows whose selection highlight appeared or disappeared
	if hadSel {
		ctx.MarkDirty(t.regionFor(tb, buffer.LineRange(oldStart.Line, oldEnd.Line)))
	}
	if s, e, ok := t.Buf.SelectionRange(); ok {
		ctx.MarkDirty(t.regionFor(tb, buffer.LineRange(s.Line, e.Line)))
	}
	return Yes
}

func treeIsLeaf(ctx *EditorContext) bool {
	return ctx == nil || ctx.Tree == nil || ctx.Tree.IsLeaf()
}

// regionFor projects a buffer-space change set onto the viewport's
// visible screen rows, accounting for soft wrap. The result is in
// viewport rows; callers fall back to Full when the pane doesn't start
// at the top of the screen, since the renderer's scissor works in
// screen rows.
func (t *BufferTarget) regionFor(tb *panetree.Tab, d buffer.DirtyLines) region.DirtyRegion {
	if d.None() {
		return region.NoneRegion()
	}
	vp := tb.Viewport
	if vp.VisibleRows == 0 {
		return region.Full()
	}
	wl := viewport.WrapLayout{WrapCols: vp.WrapCols}
	lineLen := func(i int) int { return t.Buf.LineLen(i) }
	first := int(vp.FirstVisibleScreenRow())
	last := int(vp.VisibleRows) - 1

	rowOf := func(line uint32) int {
		return int(wl.ScreenRowForBufferLine(int(line), lineLen)) - first
	}
	rowsFor := func(line uint32) int {
		return int(wl.ScreenRowsForLine(lineLen(int(line))))
	}

	var from, to int
	switch d.Kind {
	case buffer.DirtySingle:
		from = rowOf(d.From)
		to = from + rowsFor(d.From) - 1
	case buffer.DirtyRange:
		from = rowOf(d.From)
		to = rowOf(d.To) + rowsFor(d.To) - 1
	default: // DirtyFromLineToEnd
		from = rowOf(d.From)
		to = last
	}
	if to < 0 || from > last {
		return region.NoneRegion()
	}
	if from < 0 {
		from = 0
	}
	if to > last {
		to = last
	}
	return region.RowRange(uint32(from), uint32(to))
}

// apply executes a resolved Command against the buffer, handling the
// extend-selection bookkeeping every navigation command shares: when
// Extend is false, any pre-existing selection collapses; when true, an
// absent anchor is seeded at the current cursor before the move.
func (t *BufferTarget) apply(cmd Command) buffer.DirtyLines {
	b := t.Buf
	maybeAnchor := func() {
		if cmd.Extend && !b.HasSelection() {
			b.SetSelectionAnchor(b.Cursor())
		}
		if !cmd.Extend {
			b.ClearSelection()
		}
	}

	switch cmd.Kind {
	case CmdInsertChar:
		d := b.DeleteSelection()
		return buffer.Union(d, b.InsertChar(cmd.Char))
	case CmdInsertNewline:
		d := b.DeleteSelection()
		return buffer.Union(d, b.InsertChar('\n'))
	case CmdDeleteBackward:
		return b.DeleteBackward()
	case CmdDeleteForward:
		return b.DeleteForward()
	case CmdDeleteWordBackward:
		if b.HasSelection() {
			return b.DeleteSelection()
		}
		return b.DeleteRange(b.MoveWordLeft(b.Cursor()), b.Cursor())
	case CmdDeleteWordForward:
		if b.HasSelection() {
			return b.DeleteSelection()
		}
		return b.DeleteRange(b.Cursor(), b.MoveWordRight(b.Cursor()))
	case CmdDeleteToLineStart:
		cur := b.Cursor()
		return b.DeleteRange(style.Position{Line: cur.Line}, cur)
	case CmdDeleteToLineEnd:
		cur := b.Cursor()
		return b.DeleteRange(cur, style.Position{Line: cur.Line, Col: uint32(b.LineLen(int(cur.Line)))})
	case CmdMoveLeft:
		maybeAnchor()
		b.MoveCursor(b.MoveGraphemeLeft(b.Cursor()))
	case CmdMoveRight:
		maybeAnchor()
		b.MoveCursor(b.MoveGraphemeRight(b.Cursor()))
	case CmdMoveWordLeft:
		maybeAnchor()
		b.MoveCursor(b.MoveWordLeft(b.Cursor()))
	case CmdMoveWordRight:
		maybeAnchor()
		b.MoveCursor(b.MoveWordRight(b.Cursor()))
	case CmdMoveUp:
		maybeAnchor()
		cur := b.Cursor()
		if cur.Line > 0 {
			b.MoveCursor(style.Position{Line: cur.Line - 1, Col: cur.Col})
		}
	case CmdMoveDown:
		maybeAnchor()
		cur := b.Cursor()
		b.MoveCursor(style.Position{Line: cur.Line + 1, Col: cur.Col})
	case CmdMoveLineStart:
		maybeAnchor()
		cur := b.Cursor()
		b.MoveCursor(style.Position{Line: cur.Line, Col: 0})
	case CmdMoveLineEnd:
		maybeAnchor()
		cur := b.Cursor()
		b.MoveCursor(style.Position{Line: cur.Line, Col: uint32(b.LineLen(int(cur.Line)))})
	case CmdMoveDocStart:
		maybeAnchor()
		b.MoveCursor(style.Position{Line: 0, Col: 0})
	case CmdMoveDocEnd:
		maybeAnchor()
		last := b.LineCount() - 1
		b.MoveCursor(style.Position{Line: uint32(last), Col: uint32(b.LineLen(last))})
	case CmdSelectAll:
		b.SetSelectionAnchor(style.Position{Line: 0, Col: 0})
		last := b.LineCount() - 1
		b.MoveCursor(style.Position{Line: uint32(last), Col: uint32(b.LineLen(last))})
	case CmdCopy:
		t.copySelection()
	case CmdCut:
		t.copySelection()
		return b.DeleteSelection()
	case CmdPaste:
		if t.Clipboard != nil {
			if s, err := t.Clipboard.Get(); err == nil {
				d := b.DeleteSelection()
				return buffer.Union(d, b.InsertString(s))
			}
		}
	}
	return buffer.DirtyLines{}
}

// save writes the buffer's full text via IO and clears the modified
// flag on success; on failure it reports through OnStatus and leaves
// the buffer's modified flag set — the failure is surfaced, the buffer
// state untouched.
func (t *BufferTarget) save() {
	if t.IO == nil {
		return
	}
	if err := t.IO.Save(t.Buf.String()); err != nil {
		if t.OnStatus != nil {
			t.OnStatus("save failed: " + err.Error())
		}
		return
	}
	t.Buf.ClearModified()
}

func (t *BufferTarget) copySelection() {
	if t.Clipboard == nil {
		return
	}
	start, end, ok := t.Buf.SelectionRange()
	if !ok {
		return
	}
	var text string
	if start.Line == end.Line {
		text = sliceCols(t.Buf.LineText(int(start.Line)), int(start.Col), int(end.Col))
	} else {
		text = sliceCols(t.Buf.LineText(int(start.Line)), int(start.Col), t.Buf.LineLen(int(start.Line))) + "\n"
		for l := start.Line + 1; l < end.Line; l++ {
			text += t.Buf.LineText(int(l)) + "\n"
		}
		text += sliceCols(t.Buf.LineText(int(end.Line)), 0, int(end.Col))
	}
	_ = t.Clipboard.Set(text)
}

func sliceCols(s string, from, to int) string {
	r := []rune(s)
	if from < 0 {
		from = 0
	}
	if to > len(r) {
		to = len(r)
	}
	if from > to {
		return ""
	}
	return string(r[from:to])
}

func (t *BufferTarget) dispatchPaneCommand(cmd Command, ctx *EditorContext) Handled {
	if ctx == nil {
		return No
	}
	switch cmd.Kind {
	case CmdFocusPane:
		if ctx.FocusPane != nil {
			ctx.FocusPane(cmd.Dir)
		}
	case CmdMoveTab, CmdSplitPane:
		if ctx.Tree == nil || t.Pane == nil {
			return No
		}
		dir := toPaneDirection(cmd.Dir)
		if cmd.Kind == CmdSplitPane {
			dir = panetree.Right
		}
		if target := panetree.MoveTab(ctx.Tree, t.Pane, dir); target != nil {
			ctx.PaneCreated = target
		}
		ctx.Tree = panetree.Cleanup(ctx.Tree)
	}
	ctx.MarkDirty(region.Full())
	return Yes
}

func toPaneDirection(d Direction) panetree.Direction {
	switch d {
	case DirLeft:
		return panetree.Left
	case DirUp:
		return panetree.Up
	case DirDown:
		return panetree.Down
	default:
		return panetree.Right
	}
}

func (t *BufferTarget) HandleMouse(ev MouseEvent, ctx *EditorContext) Handled {
	tb := t.tab()
	if tb == nil {
		return No
	}
	cellW := t.CellWidthPx
	if cellW <= 0 {
		cellW = 1
	}
	pos := tb.Viewport.HitTest(ev.X, ev.Y, cellW, t.Buf.LineCount(), func(i int) int { return t.Buf.LineLen(i) })
	oldStart, oldEnd, hadSel := t.Buf.SelectionRange()
	before := t.Buf.Cursor()
	switch ev.Kind {
	case MouseDown:
		t.Buf.ClearSelection()
		t.Buf.MoveCursor(pos)
		t.lastClickPos = pos
	case MouseDrag:
		if !t.Buf.HasSelection() {
			t.Buf.SetSelectionAnchor(t.lastClickPos)
		}
		t.Buf.MoveCursor(pos)
	case MouseDoubleClick:
		t.Buf.SelectWordAt(int(pos.Line), int(pos.Col))
	default:
		return No
	}
	if !treeIsLeaf(ctx) {
		ctx.MarkDirty(region.Full())
		return Yes
	}
	ctx.MarkDirty(t.regionFor(tb, buffer.LineRange(before.Line, pos.Line)))
	if hadSel {
		ctx.MarkDirty(t.regionFor(tb, buffer.LineRange(oldStart.Line, oldEnd.Line)))
	}
	if s, e, ok := t.Buf.SelectionRange(); ok {
		ctx.MarkDirty(t.regionFor(tb, buffer.LineRange(s.Line, e.Line)))
	}
	return Yes
}

func (t *BufferTarget) HandleScroll(ev ScrollDelta, ctx *EditorContext) {
	tb := t.tab()
	if tb == nil {
		return
	}
	tb.Viewport.ScrollOffsetPx += ev.DY
	tb.Viewport = tb.Viewport.ClampScroll(t.Buf.LineCount(), func(i int) int { return t.Buf.LineLen(i) })
	ctx.MarkDirty(region.Full())
}
