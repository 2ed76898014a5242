// Package editorloop implements EventDrainLoop and EditorState: the single-threaded cooperative scheduler that owns the
// entire editor state by exclusive reference, drains every queued event
// before ever rendering, and enforces the no-block/no-I/O/no-render-
// mid-drain invariants.
package editorloop

import "github.com/netguy204/lite-edit/internal/focus"

// EventKind tags the union of things that can arrive in the drain
// queue: keyboard/mouse/scroll input interleaved with timer ticks and
// background-thread wake signals.
type EventKind uint8

const (
	EventKey EventKind = iota
	EventMouse
	EventScroll
	EventBlinkTick
	EventFileIndexPoll
	EventPTYWakeup
	EventFileChange
	EventSyntaxParseResult
	EventResize
	EventQuit
)

// Event is one drain-queue entry. Only the fields relevant to Kind are
// populated; this mirrors the DirtyLines/DirtyRegion tagged-union style
// used throughout this codebase rather than an interface per event kind,
// since the drain loop's dispatch is a single switch, not polymorphism.
type Event struct {
	Kind EventKind

	Key    focus.KeyEvent
	Scroll focus.ScrollDelta

	// Mouse events carry platform-space coordinates; the drain loop
	// performs the Y-flip and pane hit-test exactly once, at dispatch
	//, never before.
	MouseX, MouseY float32
	MouseButton    focus.MouseButton
	MouseKind      focus.MouseEventKind

	ResizeWidth, ResizeHeight uint32
	FilePath                  string
	ParseTabID                uint64
}
