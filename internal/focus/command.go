package focus

// CommandKind enumerates the editing/navigation commands a chord can
// resolve to. Keeping this a flat tagged struct
// rather than an interface hierarchy mirrors the DirtyLines tagged-union
// style used elsewhere in this codebase: dispatch is a single switch,
// not a dynamic-dispatch tree.
type CommandKind uint8

const (
	CmdNone CommandKind = iota
	CmdInsertChar
	CmdInsertNewline
	CmdDeleteBackward
	CmdDeleteForward
	CmdDeleteWordBackward
	CmdDeleteWordForward
	CmdDeleteToLineStart
	CmdDeleteToLineEnd
	CmdMoveLeft
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdMoveWordLeft
	CmdMoveWordRight
	CmdMoveLineStart
	CmdMoveLineEnd
	CmdMoveDocStart
	CmdMoveDocEnd
	CmdSelectAll
	CmdCopy
	CmdCut
	CmdPaste
	CmdUndo
	CmdRedo
	CmdSave
	CmdSplitPane
	CmdMoveTab
	CmdFocusPane
	CmdClosePane
	CmdOpenFileSelector
	CmdOpenFindStrip
	CmdOpenTerminal
	CmdDismissOverlay
	CmdConfirmYes
	CmdConfirmNo
)

// Command is the resolved effect of a chord: a kind plus whatever
// payload that kind needs. Extend marks navigation commands that should
// grow/shrink a selection rather than collapse it (Shift held).
type Command struct {
	Kind   CommandKind
	Char   rune
	Dir    Direction // for CmdMoveTab, reuses the cardinal directions below
	Extend bool
}

// Direction mirrors panetree.Direction so this package doesn't need to
// import panetree just to name a cardinal direction in a Command; the
// conversion lives in buffertarget.go next to its only use.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// ResolveBufferChord is the chord resolver for an editable text
// buffer: a pure function from (modifiers, key) to a Command, with no
// multi-key prefixes. Keys not bound here yield CmdNone, which callers
// must treat as Unhandled.
func ResolveBufferChord(ev KeyEvent) Command {
	mods := ev.Mods
	ctrlOrSuper := mods.Has(ModCtrl) || mods.Has(ModSuper)
	extend := mods.Has(ModShift)

	if ev.Named == KeyNone && ev.Rune != 0 && !ctrlOrSuper && !mods.Has(ModAlt) {
		return Command{Kind: CmdInsertChar, Char: ev.Rune}
	}

	switch ev.Named {
	case KeyEnter:
		return Command{Kind: CmdInsertNewline}
	case KeyBackspace:
		if mods.Has(ModAlt) {
			return Command{Kind: CmdDeleteWordBackward}
		}
		if ctrlOrSuper {
			return Command{Kind: CmdDeleteToLineStart}
		}
		return Command{Kind: CmdDeleteBackward}
	case KeyDelete:
		if mods.Has(ModAlt) {
			return Command{Kind: CmdDeleteWordForward}
		}
		return Command{Kind: CmdDeleteForward}
	case KeyLeft:
		if ctrlOrSuper && mods.Has(ModAlt) {
			return Command{Kind: CmdMoveTab, Dir: DirLeft}
		}
		if mods.Has(ModCtrl) {
			return Command{Kind: CmdFocusPane, Dir: DirLeft}
		}
		if mods.Has(ModAlt) {
			return Command{Kind: CmdMoveWordLeft, Extend: extend}
		}
		return Command{Kind: CmdMoveLeft, Extend: extend}
	case KeyRight:
		if ctrlOrSuper && mods.Has(ModAlt) {
			return Command{Kind: CmdMoveTab, Dir: DirRight}
		}
		if mods.Has(ModCtrl) {
			return Command{Kind: CmdFocusPane, Dir: DirRight}
		}
		if mods.Has(ModAlt) {
			return Command{Kind: CmdMoveWordRight, Extend: extend}
		}
		return Command{Kind: CmdMoveRight, Extend: extend}
	case KeyUp:
		if ctrlOrSuper && mods.Has(ModAlt) {
			return Command{Kind: CmdMoveTab, Dir: DirUp}
		}
		if mods.Has(ModCtrl) {
			return Command{Kind: CmdFocusPane, Dir: DirUp}
		}
		return Command{Kind: CmdMoveUp, Extend: extend}
	case KeyDown:
		if ctrlOrSuper && mods.Has(ModAlt) {
			return Command{Kind: CmdMoveTab, Dir: DirDown}
		}
		if mods.Has(ModCtrl) {
			return Command{Kind: CmdFocusPane, Dir: DirDown}
		}
		return Command{Kind: CmdMoveDown, Extend: extend}
	case KeyHome:
		return Command{Kind: CmdMoveLineStart, Extend: extend}
	case KeyEnd:
		return Command{Kind: CmdMoveLineEnd, Extend: extend}
	case KeyEscape:
		return Command{Kind: CmdDismissOverlay}
	}

	if mods.Has(ModAlt) && !ctrlOrSuper && ev.Rune == 'd' {
		return Command{Kind: CmdDeleteWordForward}
	}

	if ctrlOrSuper {
		switch ev.Rune {
		case 'k':
			return Command{Kind: CmdDeleteToLineEnd}
		case 'w':
			return Command{Kind: CmdClosePane}
		case 'a':
			return Command{Kind: CmdSelectAll}
		case 'c':
			return Command{Kind: CmdCopy}
		case 'x':
			return Command{Kind: CmdCut}
		case 'v':
			return Command{Kind: CmdPaste}
		case 'z':
			if extend {
				return Command{Kind: CmdRedo}
			}
			return Command{Kind: CmdUndo}
		case 's':
			return Command{Kind: CmdSave}
		case 'p':
			return Command{Kind: CmdOpenFileSelector}
		case 'f':
			return Command{Kind: CmdOpenFindStrip}
		case 't':
			return Command{Kind: CmdOpenTerminal}
		case '\\':
			return Command{Kind: CmdSplitPane}
		}
	}

	return Command{Kind: CmdNone}
}
