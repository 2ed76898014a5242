package terminal

import (
	"fmt"

	"github.com/netguy204/lite-edit/internal/focus"
	"github.com/netguy204/lite-edit/internal/style"
)

// EncodeKey implements focus.TerminalKeySink: translate one decoded key
// event into the bytes the PTY expects, honoring APP_CURSOR and
// Ctrl-chord C0 encoding. named uses the small integer
// codes in modes.go, which mirror focus.NamedKey's iota values (the
// interface takes a plain int precisely so this package needn't import
// focus's key-decoding types beyond Modifiers).
func (tb *TerminalBuffer) EncodeKey(mods focus.Modifiers, r rune, named int) []byte {
	m := mods

	switch named {
	case KeyEnter:
		return []byte{'\r'}
	case KeyBackspace:
		return []byte{0x7f}
	case KeyDelete:
		return []byte("\x1b[3~")
	case KeyTab:
		return []byte{'\t'}
	case KeyEscape:
		return []byte{0x1b}
	case KeyLeft:
		return cursorSeq(tb.appCursorActive(), 'D')
	case KeyRight:
		return cursorSeq(tb.appCursorActive(), 'C')
	case KeyUp:
		return cursorSeq(tb.appCursorActive(), 'A')
	case KeyDown:
		return cursorSeq(tb.appCursorActive(), 'B')
	case KeyHome:
		return []byte("\x1b[H")
	case KeyEnd:
		return []byte("\x1b[F")
	case KeyPageUp:
		return []byte("\x1b[5~")
	case KeyPageDown:
		return []byte("\x1b[6~")
	}

	if r == 0 {
		return nil
	}

	// Ctrl+letter encodes as the corresponding C0 byte;
	// Ctrl+C is ordinary key input here, never intercepted as a copy
	// shortcut (that distinction is the focus layer's job, not the PTY
	// encoder's).
	if m.Has(focus.ModCtrl) && r >= 'a' && r <= 'z' {
		return []byte{byte(r - 'a' + 1)}
	}
	if m.Has(focus.ModCtrl) && r >= 'A' && r <= 'Z' {
		return []byte{byte(r - 'A' + 1)}
	}

	return []byte(string(r))
}

func (tb *TerminalBuffer) appCursorActive() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.modes&ModeAppCursor != 0
}

func cursorSeq(appCursor bool, letter byte) []byte {
	if appCursor {
		return []byte{0x1b, 'O', letter}
	}
	return []byte{0x1b, '[', letter}
}

// EncodeBracketedPaste wraps pasted text in ESC[200~/ESC[201~ when
// BRACKETED_PASTE is active, or returns it unwrapped
// otherwise.
func (tb *TerminalBuffer) EncodeBracketedPaste(text string) []byte {
	tb.mu.Lock()
	bracketed := tb.modes&ModeBracketedPaste != 0
	tb.mu.Unlock()
	if !bracketed {
		return []byte(text)
	}
	return []byte("\x1b[200~" + text + "\x1b[201~")
}

// EncodeMouse implements focus.TerminalKeySink: encode a mouse event
// per whichever mouse-reporting mode is active. When no mouse mode is
// set, it returns nil — the caller (TerminalTarget's host wiring) is
// expected to drive local grid selection instead.
func (tb *TerminalBuffer) EncodeMouse(x, y int, button int, pressed bool) []byte {
	tb.mu.Lock()
	m := tb.modes
	sgr := m&ModeMouseSGR != 0
	tb.mu.Unlock()

	if !m.mouseModeActive() {
		// No mouse-reporting mode: the event drives local selection
		// instead of the PTY. pressed distinguishes a
		// fresh click (start a new selection) from drag/release
		// (extend the existing one) — TerminalTarget only ever passes
		// pressed=true for MouseDown, so this is the only signal
		// available through the TerminalKeySink boundary.
		pos := style.Position{Line: uint32(y), Col: uint32(x)}
		if pressed {
			tb.BeginSelection(pos)
		} else {
			tb.ExtendSelection(pos)
		}
		return nil
	}

	// Terminal coordinates are 1-based.
	col, row := x+1, y+1
	btn := button
	if !pressed {
		if sgr {
			btn = button // SGR encodes release via trailing 'm', button unchanged
		} else {
			btn = 3 // legacy X10/normal mode: release is always code 3
		}
	}

	if sgr {
		final := byte('M')
		if !pressed {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", btn, col, row, final))
	}

	// Legacy mode cannot represent coordinates past 223 (255-32); clamp
	// rather than wrap, since wrapping would report a bogus position.
	if col > 223 {
		col = 223
	}
	if row > 223 {
		row = 223
	}
	return []byte{0x1b, '[', 'M', byte(32 + btn), byte(32 + col), byte(32 + row)}
}

// WriteToPTY implements focus.TerminalKeySink by forwarding to the
// installed write sink (the PTY's stdin), if one is set.
func (tb *TerminalBuffer) WriteToPTY(data []byte) {
	if tb.onWrite != nil {
		tb.onWrite(data)
	}
}
