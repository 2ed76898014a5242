package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/panetree"
	"github.com/netguy204/lite-edit/internal/region"
	"github.com/netguy204/lite-edit/internal/style"
	"github.com/netguy204/lite-edit/internal/viewport"
)

type stubTarget struct {
	name    string
	handled Handled
	keys    int
}

func (s *stubTarget) Name() string                                      { return s.name }
func (s *stubTarget) HandleKey(KeyEvent, *EditorContext) Handled        { s.keys++; return s.handled }
func (s *stubTarget) HandleMouse(MouseEvent, *EditorContext) Handled    { return s.handled }
func (s *stubTarget) HandleScroll(ScrollDelta, *EditorContext)          {}
func (s *stubTarget) Activate()                                        {}
func (s *stubTarget) Deactivate()                                      {}

func TestDispatchKeyFallsThroughDecliningTargets(t *testing.T) {
	base := &stubTarget{name: "base", handled: Yes}
	overlay := &stubTarget{name: "overlay", handled: No}
	var stack FocusStack
	stack.Push(base)
	stack.Push(overlay)

	got := stack.DispatchKey(KeyEvent{Rune: 'x'}, &EditorContext{Stack: &stack})

	assert.Equal(t, Yes, got)
	assert.Equal(t, 1, overlay.keys, "top target is offered the event first")
	assert.Equal(t, 1, base.keys, "a declined event walks down the stack")
}

func TestDispatchKeyStopsAtFirstConsumer(t *testing.T) {
	base := &stubTarget{name: "base", handled: Yes}
	top := &stubTarget{name: "top", handled: Yes}
	var stack FocusStack
	stack.Push(base)
	stack.Push(top)

	stack.DispatchKey(KeyEvent{Rune: 'x'}, &EditorContext{Stack: &stack})

	assert.Equal(t, 1, top.keys)
	assert.Equal(t, 0, base.keys)
}

func TestPopOnEmptyStackIsNoOp(t *testing.T) {
	var stack FocusStack
	stack.Pop()
	assert.Equal(t, 0, stack.Depth())
}

// A fresh dirty-close dialog has Cancel selected, so Enter keeps the
// tab open.
func TestConfirmDialogDefaultsToCancel(t *testing.T) {
	yes, no := 0, 0
	dlg := &ConfirmDialogTarget{
		Prompt: "Unsaved changes, close anyway?",
		OnYes:  func() { yes++ },
		OnNo:   func() { no++ },
	}
	var stack FocusStack
	stack.Push(&stubTarget{name: "base", handled: Yes})
	stack.Push(dlg)

	dlg.HandleKey(KeyEvent{Named: KeyEnter}, &EditorContext{Stack: &stack})

	assert.Equal(t, 0, yes, "Enter on the default selection must not abandon the tab")
	assert.Equal(t, 1, no)
	assert.Equal(t, 1, stack.Depth(), "dialog pops itself once answered")
}

func TestConfirmDialogArrowThenEnterAbandons(t *testing.T) {
	yes := 0
	dlg := &ConfirmDialogTarget{OnYes: func() { yes++ }}
	var stack FocusStack
	stack.Push(dlg)
	ctx := &EditorContext{Stack: &stack}

	dlg.HandleKey(KeyEvent{Named: KeyRight}, ctx)
	dlg.HandleKey(KeyEvent{Named: KeyEnter}, ctx)

	assert.Equal(t, 1, yes)
}

func TestConfirmDialogEscapeCancels(t *testing.T) {
	yes, no := 0, 0
	dlg := &ConfirmDialogTarget{OnYes: func() { yes++ }, OnNo: func() { no++ }}
	var stack FocusStack
	stack.Push(dlg)

	dlg.HandleKey(KeyEvent{Named: KeyEscape}, &EditorContext{Stack: &stack})

	assert.Equal(t, 0, yes)
	assert.Equal(t, 1, no)
}

type fakeSelectorModel struct {
	items     []string
	selected  int
	cursor    int
	query     []rune
	confirmed []string
}

func (m *fakeSelectorModel) TypeRune(r rune)        { m.query = append(m.query, r) }
func (m *fakeSelectorModel) Backspace()             {}
func (m *fakeSelectorModel) MoveCursor(delta int)   { m.cursor += delta }
func (m *fakeSelectorModel) MoveSelection(delta int) { m.selected += delta }
func (m *fakeSelectorModel) SetSelection(i int)     { m.selected = i }
func (m *fakeSelectorModel) Selected() int          { return m.selected }
func (m *fakeSelectorModel) ResultCount() int       { return len(m.items) }
func (m *fakeSelectorModel) Confirm() (string, bool) {
	if len(m.items) == 0 {
		return "", false
	}
	m.confirmed = append(m.confirmed, m.items[m.selected])
	return m.items[m.selected], true
}

func TestSelectorMouseClickSelectsRow(t *testing.T) {
	model := &fakeSelectorModel{items: []string{"a.go", "b.go", "c.go"}}
	st := &SelectorTarget{Model: model}
	var stack FocusStack
	stack.Push(st)
	ctx := &EditorContext{Stack: &stack}

	// row 0 is the query line; Y=2 lands on result row 1.
	st.HandleMouse(MouseEvent{Y: 2, Kind: MouseDown}, ctx)

	assert.Equal(t, 1, model.selected)
	assert.Empty(t, model.confirmed, "a first click only selects")
}

func TestSelectorMouseReClickConfirms(t *testing.T) {
	picked := ""
	model := &fakeSelectorModel{items: []string{"a.go", "b.go"}}
	st := &SelectorTarget{Model: model, OnPick: func(p string) { picked = p }}
	var stack FocusStack
	stack.Push(&stubTarget{name: "base", handled: Yes})
	stack.Push(st)
	ctx := &EditorContext{Stack: &stack}

	st.HandleMouse(MouseEvent{Y: 2, Kind: MouseDown}, ctx)
	st.HandleMouse(MouseEvent{Y: 2, Kind: MouseDown}, ctx)

	assert.Equal(t, "b.go", picked)
	assert.Equal(t, 1, stack.Depth(), "a confirmed pick pops the overlay")
}

func TestSelectorMouseDoubleClickConfirms(t *testing.T) {
	picked := ""
	model := &fakeSelectorModel{items: []string{"a.go", "b.go"}}
	st := &SelectorTarget{Model: model, OnPick: func(p string) { picked = p }}
	var stack FocusStack
	stack.Push(st)
	ctx := &EditorContext{Stack: &stack}

	st.HandleMouse(MouseEvent{Y: 1, Kind: MouseDoubleClick}, ctx)

	assert.Equal(t, "a.go", picked)
}

func TestSelectorMouseClickOutsideListIsIgnored(t *testing.T) {
	model := &fakeSelectorModel{items: []string{"a.go"}}
	st := &SelectorTarget{Model: model}
	var stack FocusStack
	stack.Push(st)
	ctx := &EditorContext{Stack: &stack}

	st.HandleMouse(MouseEvent{Y: 9, Kind: MouseDown}, ctx)

	assert.Equal(t, 0, model.selected)
	assert.Empty(t, model.confirmed)
}

func TestSelectorArrowKeysMoveQueryCursor(t *testing.T) {
	model := &fakeSelectorModel{}
	st := &SelectorTarget{Model: model}
	var stack FocusStack
	stack.Push(st)
	ctx := &EditorContext{Stack: &stack}

	st.HandleKey(KeyEvent{Named: KeyRight}, ctx)
	st.HandleKey(KeyEvent{Named: KeyLeft}, ctx)
	st.HandleKey(KeyEvent{Named: KeyLeft}, ctx)

	assert.Equal(t, -1, model.cursor)
}

func TestResolveBufferChordPrintableRune(t *testing.T) {
	cmd := ResolveBufferChord(KeyEvent{Rune: 'a'})
	assert.Equal(t, CmdInsertChar, cmd.Kind)
	assert.Equal(t, 'a', cmd.Char)
}

func TestResolveBufferChordModifiedBindings(t *testing.T) {
	cases := []struct {
		ev   KeyEvent
		want CommandKind
	}{
		{KeyEvent{Rune: 's', Mods: ModSuper}, CmdSave},
		{KeyEvent{Rune: 'w', Mods: ModSuper}, CmdClosePane},
		{KeyEvent{Rune: 'p', Mods: ModSuper}, CmdOpenFileSelector},
		{KeyEvent{Rune: 'f', Mods: ModSuper}, CmdOpenFindStrip},
		{KeyEvent{Rune: 't', Mods: ModSuper}, CmdOpenTerminal},
		{KeyEvent{Rune: 'k', Mods: ModCtrl}, CmdDeleteToLineEnd},
		{KeyEvent{Named: KeyBackspace, Mods: ModAlt}, CmdDeleteWordBackward},
		{KeyEvent{Named: KeyBackspace, Mods: ModSuper}, CmdDeleteToLineStart},
		{KeyEvent{Rune: 'd', Mods: ModAlt}, CmdDeleteWordForward},
		{KeyEvent{Named: KeyLeft, Mods: ModAlt}, CmdMoveWordLeft},
		{KeyEvent{Named: KeyRight, Mods: ModSuper | ModAlt}, CmdMoveTab},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ResolveBufferChord(c.ev).Kind, "%+v", c.ev)
	}
}

func TestResolveBufferChordShiftMarksExtend(t *testing.T) {
	cmd := ResolveBufferChord(KeyEvent{Named: KeyRight, Mods: ModShift})
	assert.Equal(t, CmdMoveRight, cmd.Kind)
	assert.True(t, cmd.Extend)
}

func TestBufferTargetShiftArrowExtendsThenPlainArrowCollapses(t *testing.T) {
	buf := buffer.NewTextBufferFromString("hello")
	target := &BufferTarget{Buf: buf}

	target.apply(Command{Kind: CmdMoveRight, Extend: true})
	target.apply(Command{Kind: CmdMoveRight, Extend: true})
	start, end, ok := buf.SelectionRange()
	require.True(t, ok)
	assert.Equal(t, style.Position{Line: 0, Col: 0}, start)
	assert.Equal(t, style.Position{Line: 0, Col: 2}, end)

	target.apply(Command{Kind: CmdMoveRight})
	assert.False(t, buf.HasSelection())
}

func TestBufferTargetEditWithSelectionDeletesRangeFirst(t *testing.T) {
	buf := buffer.NewTextBufferFromString("hello")
	buf.SetSelectionAnchor(style.Position{Line: 0, Col: 1})
	buf.MoveCursor(style.Position{Line: 0, Col: 4})
	target := &BufferTarget{Buf: buf}

	target.apply(Command{Kind: CmdInsertChar, Char: 'X'})

	assert.Equal(t, "hXo", buf.String())
}

// A plain keystroke in a single-pane layout dirties only the edited
// row, never the whole viewport.
func TestBufferTargetKeystrokeMarksOnlyEditedRows(t *testing.T) {
	buf := buffer.NewTextBufferFromString("one\ntwo\nthree")
	tab := &panetree.Tab{Viewport: viewport.Viewport{LineHeightPx: 1, VisibleRows: 10}}
	pane := panetree.NewLeaf(&panetree.Pane{ID: 1, Tabs: []*panetree.Tab{tab}})
	target := &BufferTarget{Pane: pane, Buf: buf}
	buf.MoveCursor(style.Position{Line: 1, Col: 0})
	ctx := &EditorContext{Tree: pane}

	target.HandleKey(KeyEvent{Rune: 'x'}, ctx)

	d := ctx.TakeDirty()
	require.Equal(t, region.Lines, d.Kind)
	assert.Equal(t, uint32(1), d.FromRow)
	assert.Equal(t, uint32(1), d.ToRow)
}

// A newline edit dirties from the edited row to the bottom of the
// viewport, still without forcing FullViewport.
func TestBufferTargetNewlineMarksThroughViewportEnd(t *testing.T) {
	buf := buffer.NewTextBufferFromString("one\ntwo\nthree")
	tab := &panetree.Tab{Viewport: viewport.Viewport{LineHeightPx: 1, VisibleRows: 5}}
	pane := panetree.NewLeaf(&panetree.Pane{ID: 1, Tabs: []*panetree.Tab{tab}})
	target := &BufferTarget{Pane: pane, Buf: buf}
	buf.MoveCursor(style.Position{Line: 1, Col: 0})
	ctx := &EditorContext{Tree: pane}

	target.HandleKey(KeyEvent{Named: KeyEnter}, ctx)

	d := ctx.TakeDirty()
	require.Equal(t, region.Lines, d.Kind)
	assert.Equal(t, uint32(1), d.FromRow)
	assert.Equal(t, uint32(4), d.ToRow)
}

func TestBufferTargetDeleteWordBackward(t *testing.T) {
	buf := buffer.NewTextBufferFromString("foo bar")
	buf.MoveCursor(style.Position{Line: 0, Col: 7})
	target := &BufferTarget{Buf: buf}

	target.apply(Command{Kind: CmdDeleteWordBackward})

	assert.Equal(t, "foo ", buf.String())
}
