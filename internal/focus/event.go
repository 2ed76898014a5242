// Package focus implements input routing and command dispatch:
// FocusTarget, the FocusStack responder chain, the per-target chord
// resolver, and EditorContext, the narrow mutable view each handler
// gets into the active tab.
package focus

// Modifiers is a bitset of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on macOS, Super/Meta elsewhere
)

func (m Modifiers) Has(mod Modifiers) bool { return m&mod != 0 }

// NamedKey enumerates non-printable keys. The zero value means "see
// KeyEvent.Rune instead."
type NamedKey uint8

const (
	KeyNone NamedKey = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyTab
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// KeyEvent is one keyboard event, already decoded from whatever the host
// platform delivered (see internal/host for the terminal decoding via
// riffkey).
type KeyEvent struct {
	Mods  Modifiers
	Rune  rune     // set when Named == KeyNone
	Named NamedKey // set when this is not a printable rune
}

// MouseButton identifies which mouse button an event concerns.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// MouseEventKind distinguishes press/release/move/double-click.
type MouseEventKind uint8

const (
	MouseDown MouseEventKind = iota
	MouseUp
	MouseMove
	MouseDoubleClick
	MouseDrag
)

// MouseEvent carries pane-local coordinates only; the global to
// pane-local transform happens exactly once, at drain-loop ingress.
type MouseEvent struct {
	X, Y   float32
	Button MouseButton
	Kind   MouseEventKind
}

// ScrollDelta is a scroll-wheel or trackpad event, pane-local.
type ScrollDelta struct {
	DX, DY float32
}

// Handled reports whether a target consumed an event.
type Handled bool

const (
	Yes Handled = true
	No  Handled = false
)
