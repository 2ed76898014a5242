package editorloop

import (
	"time"

	"github.com/netguy204/lite-edit/internal/focus"
	"github.com/netguy204/lite-edit/internal/panetree"
	"github.com/netguy204/lite-edit/internal/region"
)

// Workspace owns the pane tree for one window. EditorState owns the
// Workspace; a tab never stores a back-pointer to its containing pane —
// lookup is always by id through the root.
type Workspace struct {
	Tree *panetree.Node
}

// ContentState holds the document-side data: workspaces, panes, tabs,
// and (through the pane tree's BufferViews) every buffer.
type ContentState struct {
	Workspace Workspace
}

// UIState holds everything about how the content is currently being
// presented and interacted with, decomposed out of EditorState so a
// handler that only touches focus/cursor/dirty state can borrow just
// this.
type UIState struct {
	Stack         focus.FocusStack
	Dirty         region.DirtyRegion
	CursorVisible bool
	BlinkEpoch    uint64
	lastInput     time.Time
}

// resetBlink is called on every keystroke: the cursor goes solid and the
// 500ms blink timer restarts.
func (u *UIState) resetBlink(now time.Time) {
	u.CursorVisible = true
	u.BlinkEpoch++
	u.lastInput = now
}

// PlatformState is the thin slice of host-provided facts the core needs:
// current view size and, eventually, font metrics. The host services
// themselves (GPU, font rasterizer, clipboard) live behind the
// interfaces in internal/platform and are never stored here directly —
// this struct holds only their observable outputs.
type PlatformState struct {
	ViewWidth, ViewHeight uint32
}

// SessionState is what should survive across restarts: most-recently-
// used files and the last-open workspace layout. internal/fileindex
// persists the recency list; EditorState only caches it in memory for
// the current session.
type SessionState struct {
	RecentFiles []string
}

// EditorState is the root the drain loop holds by exclusive reference.
// No other goroutine may read or write any of its fields; background
// threads (PTY reader, file walker, fsnotify watcher) communicate only
// by posting Events, never by touching EditorState directly.
type EditorState struct {
	Content  ContentState
	UI       UIState
	Platform PlatformState
	Session  SessionState
}

// NewEditorState builds an EditorState around an existing pane tree.
func NewEditorState(tree *panetree.Node) *EditorState {
	return &EditorState{
		Content: ContentState{Workspace: Workspace{Tree: tree}},
		UI:      UIState{CursorVisible: true},
	}
}
