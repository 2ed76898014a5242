package focus

import "strings"

// Keymap is a set of chord overrides consulted before the built-in
// defaults, keyed by the canonical notation produced by chordNotation.
// Build one from config strings with ParseKeymap.
type Keymap map[string]Command

// commandNames maps the command names accepted in config keymap values
// to their CommandKind. Navigation commands get their Extend variant by
// appending "_extend" to the name.
var commandNames = map[string]CommandKind{
	"insert_newline":        CmdInsertNewline,
	"delete_backward":       CmdDeleteBackward,
	"delete_forward":        CmdDeleteForward,
	"delete_word_backward":  CmdDeleteWordBackward,
	"delete_word_forward":   CmdDeleteWordForward,
	"delete_to_line_start":  CmdDeleteToLineStart,
	"delete_to_line_end":    CmdDeleteToLineEnd,
	"move_left":             CmdMoveLeft,
	"move_right":            CmdMoveRight,
	"move_up":               CmdMoveUp,
	"move_down":             CmdMoveDown,
	"move_word_left":        CmdMoveWordLeft,
	"move_word_right":       CmdMoveWordRight,
	"move_line_start":       CmdMoveLineStart,
	"move_line_end":         CmdMoveLineEnd,
	"move_doc_start":        CmdMoveDocStart,
	"move_doc_end":          CmdMoveDocEnd,
	"select_all":            CmdSelectAll,
	"copy":                  CmdCopy,
	"cut":                   CmdCut,
	"paste":                 CmdPaste,
	"undo":                  CmdUndo,
	"redo":                  CmdRedo,
	"save":                  CmdSave,
	"split_pane":            CmdSplitPane,
	"close_pane":            CmdClosePane,
	"open_file_selector":    CmdOpenFileSelector,
	"open_find_strip":       CmdOpenFindStrip,
	"open_terminal":         CmdOpenTerminal,
	"dismiss_overlay":       CmdDismissOverlay,
}

// ParseKeymap converts config's chord-notation -> command-name pairs
// into a resolved Keymap. Entries whose chord or command name cannot be
// parsed are returned in bad and skipped, so one typo in a config file
// doesn't discard the rest of the map.
func ParseKeymap(raw map[string]string) (km Keymap, bad []string) {
	if len(raw) == 0 {
		return nil, nil
	}
	km = make(Keymap, len(raw))
	for chord, name := range raw {
		ev, ok := parseChordPattern(chord)
		if !ok {
			bad = append(bad, chord)
			continue
		}
		cmdName := name
		extend := strings.HasSuffix(name, "_extend")
		if extend {
			cmdName = strings.TrimSuffix(name, "_extend")
		}
		kind, ok := commandNames[cmdName]
		if !ok {
			bad = append(bad, chord)
			continue
		}
		km[chordNotation(ev)] = Command{Kind: kind, Extend: extend}
	}
	return km, bad
}

// ResolveChord resolves ev against the overrides first, then the
// built-in defaults. A nil or empty Keymap is exactly
// ResolveBufferChord.
func ResolveChord(ev KeyEvent, overrides Keymap) Command {
	if len(overrides) > 0 {
		if cmd, ok := overrides[chordNotation(ev)]; ok {
			return cmd
		}
	}
	return ResolveBufferChord(ev)
}

// namedKeyNotation is the canonical spelling of each NamedKey inside a
// <...> chord pattern.
var namedKeyNotation = map[NamedKey]string{
	KeyEnter:     "CR",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyTab:       "Tab",
	KeyEscape:    "Esc",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
}

// chordNotation emits the canonical vim-style notation for a key event:
// a bare printable rune stays bare, everything else is wrapped in <...>
// with modifier prefixes in C,M,S,D order.
func chordNotation(ev KeyEvent) string {
	var base string
	if ev.Named != KeyNone {
		base = namedKeyNotation[ev.Named]
	} else if ev.Rune == ' ' {
		base = "Space"
	} else {
		base = string(ev.Rune)
	}
	if ev.Mods == 0 && ev.Named == KeyNone && ev.Rune != ' ' {
		return base
	}
	var b strings.Builder
	b.WriteByte('<')
	if ev.Mods.Has(ModCtrl) {
		b.WriteString("C-")
	}
	if ev.Mods.Has(ModAlt) {
		b.WriteString("M-")
	}
	if ev.Mods.Has(ModShift) {
		b.WriteString("S-")
	}
	if ev.Mods.Has(ModSuper) {
		b.WriteString("D-")
	}
	b.WriteString(base)
	b.WriteByte('>')
	return b.String()
}

// parseChordPattern reads one chord in vim-style notation ("x", "<C-p>",
// "<M-Left>", "<D-s>") back into a KeyEvent. ok is false for anything it
// cannot interpret.
func parseChordPattern(s string) (KeyEvent, bool) {
	if !strings.HasPrefix(s, "<") {
		r := []rune(s)
		if len(r) != 1 {
			return KeyEvent{}, false
		}
		return KeyEvent{Rune: r[0]}, true
	}
	if !strings.HasSuffix(s, ">") || len(s) < 3 {
		return KeyEvent{}, false
	}
	parts := strings.Split(s[1:len(s)-1], "-")
	var mods Modifiers
	for len(parts) > 1 {
		switch parts[0] {
		case "C", "c":
			mods |= ModCtrl
		case "M", "m", "A", "a":
			mods |= ModAlt
		case "S", "s":
			mods |= ModShift
		case "D", "d":
			mods |= ModSuper
		default:
			return KeyEvent{}, false
		}
		parts = parts[1:]
	}
	base := parts[0]
	switch strings.ToLower(base) {
	case "cr", "enter", "return":
		return KeyEvent{Mods: mods, Named: KeyEnter}, true
	case "bs", "backspace":
		return KeyEvent{Mods: mods, Named: KeyBackspace}, true
	case "del", "delete":
		return KeyEvent{Mods: mods, Named: KeyDelete}, true
	case "tab":
		return KeyEvent{Mods: mods, Named: KeyTab}, true
	case "esc", "escape":
		return KeyEvent{Mods: mods, Named: KeyEscape}, true
	case "left":
		return KeyEvent{Mods: mods, Named: KeyLeft}, true
	case "right":
		return KeyEvent{Mods: mods, Named: KeyRight}, true
	case "up":
		return KeyEvent{Mods: mods, Named: KeyUp}, true
	case "down":
		return KeyEvent{Mods: mods, Named: KeyDown}, true
	case "home":
		return KeyEvent{Mods: mods, Named: KeyHome}, true
	case "end":
		return KeyEvent{Mods: mods, Named: KeyEnd}, true
	case "pageup":
		return KeyEvent{Mods: mods, Named: KeyPageUp}, true
	case "pagedown":
		return KeyEvent{Mods: mods, Named: KeyPageDown}, true
	case "space":
		return KeyEvent{Mods: mods, Rune: ' '}, true
	}
	r := []rune(base)
	if len(r) != 1 {
		return KeyEvent{}, false
	}
	return KeyEvent{Mods: mods, Rune: r[0]}, true
}
