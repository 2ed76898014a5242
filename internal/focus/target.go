package focus

import (
	"github.com/netguy204/lite-edit/internal/panetree"
	"github.com/netguy204/lite-edit/internal/region"
)

// FocusTarget is anything that can own keyboard/mouse/scroll input for a
// moment: a buffer pane, the terminal pane, the fuzzy selector overlay,
// the find strip, a confirm dialog. Exactly one target stack exists per
// window; the top of the stack gets first refusal on every event
//. Handlers that return No fall through to the next
// target down the stack, never to the one above.
type FocusTarget interface {
	// Name identifies the target for debugging and for EditorContext
	// introspection; it is not used for dispatch.
	Name() string
	HandleKey(ev KeyEvent, ctx *EditorContext) Handled
	HandleMouse(ev MouseEvent, ctx *EditorContext) Handled
	HandleScroll(ev ScrollDelta, ctx *EditorContext)
	// Activate/Deactivate fire when a target gains/loses the top-of-stack
	// position — e.g. to start/stop a cursor blink timer.
	Activate()
	Deactivate()
}

// FocusStack is the responder chain: a LIFO of FocusTargets where the
// top target is offered every event first, and a target may consume an
// event itself, pass it down by returning No, or push/pop overlays
// (selector, find strip, confirm dialog) in response.
type FocusStack struct {
	stack []FocusTarget
}

// Push installs t as the new top of the responder chain.
func (s *FocusStack) Push(t FocusTarget) {
	if top := s.Top(); top != nil {
		top.Deactivate()
	}
	s.stack = append(s.stack, t)
	t.Activate()
}

// Pop removes the top of the responder chain, if any, and reactivates
// what's now on top.
func (s *FocusStack) Pop() {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	top.Deactivate()
	if newTop := s.Top(); newTop != nil {
		newTop.Activate()
	}
}

// Top returns the current responder, or nil if the stack is empty.
func (s *FocusStack) Top() FocusTarget {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Depth reports how many targets are stacked (1 means only the base
// target — a pane — has focus, with no overlay active).
func (s *FocusStack) Depth() int { return len(s.stack) }

// DispatchKey offers ev to the top of the stack; a target that returns
// No passes it to the next target down, until someone returns Yes or
// every target has declined. Global bindings can therefore live at the
// stack's base without each overlay duplicating them.
func (s *FocusStack) DispatchKey(ev KeyEvent, ctx *EditorContext) Handled {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].HandleKey(ev, ctx) == Yes {
			return Yes
		}
	}
	return No
}

func (s *FocusStack) DispatchMouse(ev MouseEvent, ctx *EditorContext) Handled {
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].HandleMouse(ev, ctx) == Yes {
			return Yes
		}
	}
	return No
}

func (s *FocusStack) DispatchScroll(ev ScrollDelta, ctx *EditorContext) {
	if top := s.Top(); top != nil {
		top.HandleScroll(ev, ctx)
	}
}

// EditorContext is the narrow mutable handle a FocusTarget's handlers
// get into the rest of the editor: the active pane tree (for split/move
// commands), a sink for screen-space dirty regions, and the focus stack
// itself (so a target can push an overlay on top of itself — e.g. "open
// file" pushing the selector). It deliberately does not expose the full
// EditorState: handlers operate on their own target's data
// directly and only reach into EditorContext for cross-cutting effects.
type EditorContext struct {
	Tree   *panetree.Node
	Active *panetree.Node
	Stack  *FocusStack

	// FocusPane moves keyboard focus to the pane adjacent in a direction;
	// supplied by the drain loop, which owns the pane-target registry.
	FocusPane func(Direction)

	// PaneCreated is set by a handler whose command produced or
	// repopulated a pane (a tab-move split, a move into an existing
	// pane), so the drain loop can tell the application to (re)bind an
	// input target for it.
	PaneCreated *panetree.Node

	dirty region.DirtyRegion
	Quit  bool
}

// MarkDirty merges d into the region the renderer will redraw this
// frame.
func (c *EditorContext) MarkDirty(d region.DirtyRegion) {
	c.dirty = region.Union(c.dirty, d)
}

// TakeDirty returns and clears the screen-space dirty region accumulated
// this dispatch cycle. Called by the drain loop after each dispatch.
func (c *EditorContext) TakeDirty() region.DirtyRegion {
	d := c.dirty
	c.dirty = region.DirtyRegion{}
	return d
}
