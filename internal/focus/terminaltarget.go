package focus

import "github.com/netguy204/lite-edit/internal/region"

// TerminalKeySink is the subset of internal/terminal's TerminalBuffer a
// FocusTarget needs: encode a decoded key/mouse event into the bytes the
// PTY expects, honoring whatever terminal modes (APP_CURSOR, mouse
// tracking, bracketed paste) are currently active. The editor core
// depends only on this interface, never on the terminal package's
// concrete ANSI state machine.
type TerminalKeySink interface {
	EncodeKey(mods Modifiers, r rune, named int) []byte
	EncodeMouse(x, y int, button int, pressed bool) []byte
	EncodeBracketedPaste(text string) []byte
	CopySelection() (string, bool)
	WriteToPTY([]byte)
}

// TerminalTarget forwards raw key/mouse events to the PTY instead of
// interpreting them as editor commands: a terminal pane is "dumb" from
// the focus layer's point of view, since the shell running inside it
// owns line editing, history, and its own keybindings.
// The two exceptions are Cmd+C/Cmd+V, which map to the system clipboard
// rather than the PTY — Ctrl+C stays ordinary key input.
type TerminalTarget struct {
	Sink      TerminalKeySink
	Clipboard Clipboard
}

func (t *TerminalTarget) Name() string { return "terminal" }
func (t *TerminalTarget) Activate()    {}
func (t *TerminalTarget) Deactivate()  {}

func (t *TerminalTarget) HandleKey(ev KeyEvent, ctx *EditorContext) Handled {
	if t.Sink == nil {
		return No
	}
	if ev.Mods.Has(ModSuper) && ev.Named == KeyNone {
		switch ev.Rune {
		case 'c':
			if t.Clipboard != nil {
				if text, ok := t.Sink.CopySelection(); ok {
					_ = t.Clipboard.Set(text)
				}
			}
			return Yes
		case 'v':
			if t.Clipboard != nil {
				if text, err := t.Clipboard.Get(); err == nil && text != "" {
					t.Sink.WriteToPTY(t.Sink.EncodeBracketedPaste(text))
					ctx.MarkDirty(region.Full())
				}
			}
			return Yes
		}
		return No // other Cmd chords belong to targets further down the stack
	}
	t.Sink.WriteToPTY(t.Sink.EncodeKey(ev.Mods, ev.Rune, int(ev.Named)))
	ctx.MarkDirty(region.Full())
	return Yes
}

func (t *TerminalTarget) HandleMouse(ev MouseEvent, ctx *EditorContext) Handled {
	if t.Sink == nil {
		return No
	}
	t.Sink.WriteToPTY(t.Sink.EncodeMouse(int(ev.X), int(ev.Y), int(ev.Button), ev.Kind == MouseDown))
	ctx.MarkDirty(region.Full())
	return Yes
}

func (t *TerminalTarget) HandleScroll(ev ScrollDelta, ctx *EditorContext) {
	// Terminal scrollback is handled by the terminal package's own grid
	// state, not routed through the PTY; nothing to forward here.
}
