package editorloop

import (
	"time"

	"github.com/netguy204/lite-edit/internal/focus"
	"github.com/netguy204/lite-edit/internal/panetree"
	"github.com/netguy204/lite-edit/internal/region"
)

const blinkInterval = 500 * time.Millisecond

// Hooks are the background-thread integration points the drain loop
// invokes for event kinds it cannot resolve on its own: draining newly
// arrived PTY bytes into the right terminal's BufferView, re-querying
// the FileIndex for an open selector, reacting to a filesystem change,
// or absorbing an async syntax-highlight result. Each hook runs
// synchronously on the drain-loop's own goroutine — only the posting of
// the wake Event happens from a background thread.
type Hooks struct {
	OnPTYWakeup         func(state *EditorState)
	OnFileIndexPoll     func(state *EditorState)
	OnFileChange        func(state *EditorState, path string)
	OnSyntaxParseResult func(state *EditorState, tabID uint64)
	OnResize            func(state *EditorState, w, h uint32)

	// OnPaneCreated fires when a handler's command produced or
	// repopulated a pane (e.g. a tab-move split), so the application can
	// bind an input target for it before the user can focus it.
	OnPaneCreated func(state *EditorState, node *panetree.Node)
}

// EventDrainLoop is the single-threaded cooperative scheduler. It owns
// *EditorState by exclusive reference; queue is the only channel by
// which any other goroutine may influence it.
type EventDrainLoop struct {
	State *EditorState
	Hooks Hooks

	queue chan Event

	// paneTargets maps a pane's id to the FocusTarget that owns its
	// keyboard/mouse input when it is the active pane — a BufferTarget
	// or TerminalTarget, set up by whoever created the pane. Mouse
	// clicks into a different pane swap the stack's base target.
	paneTargets map[uint64]focus.FocusTarget
	activePane  uint64

	quit bool
}

// NewEventDrainLoop creates a loop around state with a generously sized
// non-blocking queue; Post never blocks the caller (including
// background threads), satisfying the "no handler blocks on I/O"
// invariant from the producer side too.
func NewEventDrainLoop(state *EditorState, hooks Hooks) *EventDrainLoop {
	return &EventDrainLoop{
		State:       state,
		Hooks:       hooks,
		queue:       make(chan Event, 1024),
		paneTargets: make(map[uint64]focus.FocusTarget),
	}
}

// RegisterPaneTarget associates a pane id with the FocusTarget that
// should handle input while that pane is active. Call it whenever a
// pane is created (including by a split or tab move).
func (l *EventDrainLoop) RegisterPaneTarget(paneID uint64, t focus.FocusTarget) {
	l.paneTargets[paneID] = t
}

// UnregisterPaneTarget drops a pane's target, e.g. after Cleanup removes it.
func (l *EventDrainLoop) UnregisterPaneTarget(paneID uint64) {
	delete(l.paneTargets, paneID)
}

// SetActivePane makes paneID the base of the focus stack, provided no
// modal overlay is currently on top (overlays own input exclusively
// until dismissed).
func (l *EventDrainLoop) SetActivePane(paneID uint64) {
	if l.State.UI.Stack.Depth() > 1 {
		return
	}
	t, ok := l.paneTargets[paneID]
	if !ok || paneID == l.activePane {
		return
	}
	l.State.UI.Stack.Pop()
	l.activePane = paneID
	l.State.UI.Stack.Push(t)
}

// Post enqueues an event without blocking; a full queue drops the event
// rather than stalling whatever thread produced it.
func (l *EventDrainLoop) Post(ev Event) {
	select {
	case l.queue <- ev:
	default:
	}
}

// Drain pulls every currently queued event without blocking, dispatches
// each in FIFO order, and returns once the queue is empty — never
// rendering mid-drain. The caller renders
// exactly once after Drain returns, iff state changed.
func (l *EventDrainLoop) Drain() {
	for {
		select {
		case ev := <-l.queue:
			l.dispatch(ev)
		default:
			l.checkBlink()
			return
		}
	}
}

// Quit reports whether a quit command has been dispatched.
func (l *EventDrainLoop) Quit() bool { return l.quit }

func (l *EventDrainLoop) ctx() *focus.EditorContext {
	return &focus.EditorContext{
		Tree:      l.State.Content.Workspace.Tree,
		Active:    l.activePaneNode(),
		Stack:     &l.State.UI.Stack,
		FocusPane: l.focusPane,
	}
}

// focusPane moves keyboard focus to the pane geometrically adjacent to
// the active one: among panes whose rect center lies strictly in the
// requested direction, the nearest center wins. Geometry, not tree
// shape, decides adjacency — after a few splits the tree structure no
// longer mirrors what the user sees.
func (l *EventDrainLoop) focusPane(d focus.Direction) {
	root := l.State.Content.Workspace.Tree
	rects := panetree.Layout(root, panetree.Rect{
		W: float32(l.State.Platform.ViewWidth),
		H: float32(l.State.Platform.ViewHeight),
	})
	var cur *panetree.PaneRect
	for i := range rects {
		if rects[i].PaneID == l.activePane {
			cur = &rects[i]
			break
		}
	}
	if cur == nil {
		return
	}
	cx := cur.Rect.X + cur.Rect.W/2
	cy := cur.Rect.Y + cur.Rect.H/2

	bestID := uint64(0)
	var bestDist float32 = -1
	for i := range rects {
		r := rects[i]
		if r.PaneID == l.activePane {
			continue
		}
		ox := r.Rect.X + r.Rect.W/2
		oy := r.Rect.Y + r.Rect.H/2
		dx, dy := ox-cx, oy-cy
		inDir := false
		switch d {
		case focus.DirLeft:
			inDir = dx < 0
		case focus.DirRight:
			inDir = dx > 0
		case focus.DirUp:
			inDir = dy < 0
		case focus.DirDown:
			inDir = dy > 0
		}
		if !inDir {
			continue
		}
		dist := dx*dx + dy*dy
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			bestID = r.PaneID
		}
	}
	if bestDist >= 0 {
		l.SetActivePane(bestID)
		l.State.UI.Dirty = region.Union(l.State.UI.Dirty, region.Full())
	}
}

func (l *EventDrainLoop) activePaneNode() *panetree.Node {
	return panetree.FindPane(l.State.Content.Workspace.Tree, l.activePane)
}

func (l *EventDrainLoop) dispatch(ev Event) {
	switch ev.Kind {
	case EventKey:
		l.State.UI.resetBlink(nowFunc())
		c := l.ctx()
		handled := l.State.UI.Stack.DispatchKey(ev.Key, c)
		l.mergeDirty(c)
		if handled == focus.No {
			// the quit chord lives below every target on the stack
			l.checkQuit(ev.Key)
		}
	case EventMouse:
		l.dispatchMouse(ev)
	case EventScroll:
		c := l.ctx()
		l.State.UI.Stack.DispatchScroll(ev.Scroll, c)
		l.mergeDirty(c)
	case EventBlinkTick:
		l.toggleBlink()
	case EventFileIndexPoll:
		if l.Hooks.OnFileIndexPoll != nil {
			l.Hooks.OnFileIndexPoll(l.State)
		}
	case EventPTYWakeup:
		if l.Hooks.OnPTYWakeup != nil {
			l.Hooks.OnPTYWakeup(l.State)
		}
		// the terminal's own per-row DirtyLines are renderer-consumed
		// (TakeDirty); here we only know output arrived somewhere
		l.State.UI.Dirty = region.Union(l.State.UI.Dirty, region.Full())
	case EventFileChange:
		if l.Hooks.OnFileChange != nil {
			l.Hooks.OnFileChange(l.State, ev.FilePath)
		}
	case EventSyntaxParseResult:
		if l.Hooks.OnSyntaxParseResult != nil {
			l.Hooks.OnSyntaxParseResult(l.State, ev.ParseTabID)
		}
		l.State.UI.Dirty = region.Union(l.State.UI.Dirty, region.Full())
	case EventResize:
		l.State.Platform.ViewWidth = ev.ResizeWidth
		l.State.Platform.ViewHeight = ev.ResizeHeight
		if l.Hooks.OnResize != nil {
			l.Hooks.OnResize(l.State, ev.ResizeWidth, ev.ResizeHeight)
		}
		l.State.UI.Dirty = region.Union(l.State.UI.Dirty, region.Full())
	case EventQuit:
		l.quit = true
	}
}

// dispatchMouse owns the coordinate discipline: the platform-to-screen
// Y flip and the pane hit-test both happen here, exactly once, before
// the event is ever handed to a FocusTarget.
func (l *EventDrainLoop) dispatchMouse(ev Event) {
	screenY := float32(l.State.Platform.ViewHeight) - ev.MouseY
	root := l.State.Content.Workspace.Tree
	rects := panetree.Layout(root, panetree.Rect{
		W: float32(l.State.Platform.ViewWidth),
		H: float32(l.State.Platform.ViewHeight),
	})
	var hit *panetree.PaneRect
	for i := range rects {
		r := rects[i].Rect
		if ev.MouseX >= r.X && ev.MouseX < r.X+r.W && screenY >= r.Y && screenY < r.Y+r.H {
			hit = &rects[i]
			break
		}
	}
	if hit == nil {
		return
	}
	if ev.MouseKind == focus.MouseDown {
		l.SetActivePane(hit.PaneID)
	}
	local := focus.MouseEvent{
		X:      ev.MouseX - hit.Rect.X,
		Y:      screenY - hit.Rect.Y,
		Button: ev.MouseButton,
		Kind:   ev.MouseKind,
	}
	c := l.ctx()
	l.State.UI.Stack.DispatchMouse(local, c)
	l.mergeDirty(c)
}

func (l *EventDrainLoop) mergeDirty(c *focus.EditorContext) {
	l.State.UI.Dirty = region.Union(l.State.UI.Dirty, c.TakeDirty())
	if c.Tree != nil {
		l.State.Content.Workspace.Tree = c.Tree
	}
	if c.PaneCreated != nil {
		if l.Hooks.OnPaneCreated != nil {
			l.Hooks.OnPaneCreated(l.State, c.PaneCreated)
		}
		if c.PaneCreated.Leaf != nil {
			// a moved tab carries focus with it
			l.SetActivePane(c.PaneCreated.Leaf.ID)
		}
	}
	if c.Quit {
		l.quit = true
	}
}

func (l *EventDrainLoop) checkQuit(ev focus.KeyEvent) {
	// Cmd+Q on a GUI host; Ctrl+Q where no Super modifier exists (the
	// terminal-hosted build).
	if (ev.Mods.Has(focus.ModSuper) || ev.Mods.Has(focus.ModCtrl)) && ev.Rune == 'q' {
		l.quit = true
	}
}

// checkBlink fires at most once per Drain call (not a separate timer
// goroutine in this implementation): if 500ms have elapsed since the
// last reset, toggle visibility and dirty the cursor's screen row. The
// host's timer facility is expected to wake the loop via
// Post(Event{Kind: EventBlinkTick}) on its own schedule; this local
// check is a fallback so tests can drive blink without a real timer.
func (l *EventDrainLoop) checkBlink() {
	if nowFunc().Sub(l.State.UI.lastInput) < blinkInterval {
		return
	}
	l.toggleBlink()
	l.State.UI.lastInput = nowFunc()
}

// toggleBlink flips cursor visibility and dirties only the cursor's
// screen row, so an idle editor repaints one row twice a second, not
// the whole viewport.
func (l *EventDrainLoop) toggleBlink() {
	l.State.UI.CursorVisible = !l.State.UI.CursorVisible
	l.State.UI.BlinkEpoch++
	l.State.UI.Dirty = region.Union(l.State.UI.Dirty, l.cursorBlinkRegion())
}

// cursorBlinkRegion is the screen row holding the active tab's cursor.
// Soft-wrapped viewports fall back to Full (wrap-row math needs line
// lengths BufferView doesn't expose), as do multi-pane layouts, whose
// viewport rows aren't screen rows.
func (l *EventDrainLoop) cursorBlinkRegion() region.DirtyRegion {
	node := l.activePaneNode()
	if node == nil || node.Leaf == nil || len(node.Leaf.Tabs) == 0 {
		return region.Full()
	}
	tree := l.State.Content.Workspace.Tree
	tab := node.Leaf.Tabs[node.Leaf.ActiveTab]
	if tab.View == nil || tab.Viewport.WrapCols != 0 || tree == nil || !tree.IsLeaf() {
		return region.Full()
	}
	cur, ok := tab.View.CursorInfo()
	if !ok {
		return region.NoneRegion()
	}
	first := tab.Viewport.FirstVisibleScreenRow()
	if cur.Position.Line < first {
		return region.NoneRegion()
	}
	row := cur.Position.Line - first
	if tab.Viewport.VisibleRows > 0 && row >= tab.Viewport.VisibleRows {
		return region.NoneRegion()
	}
	return region.RowRange(row, row)
}

// nowFunc is a var so tests can stub the clock without a real sleep.
var nowFunc = time.Now
