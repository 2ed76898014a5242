package focus

import "github.com/netguy204/lite-edit/internal/region"

// SelectorModel is the subset of internal/selector's fuzzy-filter widget
// a FocusTarget needs to drive: feed it keystrokes, move the in-query
// cursor, read back the filtered result list, move or set the
// highlighted row, and resolve a pick. Kept as an interface here so this
// package never imports fileindex or selector directly.
type SelectorModel interface {
	TypeRune(r rune)
	Backspace()
	MoveCursor(delta int)
	MoveSelection(delta int)
	SetSelection(i int)
	Selected() int
	Confirm() (path string, ok bool)
	ResultCount() int
}

// selectorHeaderRows is how many rows the overlay draws above the result
// list (the query line), used to map a click's Y to a result row.
const selectorHeaderRows = 1

// SelectorTarget is the modal overlay pushed onto the FocusStack by
// CmdOpenFileSelector. It owns the keyboard outright until Escape or a
// confirmed pick pops it back off.
type SelectorTarget struct {
	Model    SelectorModel
	OnPick   func(path string)
	OnCancel func()

	// LineHeightPx maps a click's Y to a result row; zero falls back to 1
	// (the terminal host's cell height).
	LineHeightPx float32
}

func (s *SelectorTarget) Name() string { return "selector" }
func (s *SelectorTarget) Activate()    {}
func (s *SelectorTarget) Deactivate()  {}

// confirm resolves the current pick, pops the overlay, and notifies.
func (s *SelectorTarget) confirm(ctx *EditorContext) {
	if path, ok := s.Model.Confirm(); ok {
		ctx.Stack.Pop()
		if s.OnPick != nil {
			s.OnPick(path)
		}
	}
}

func (s *SelectorTarget) HandleKey(ev KeyEvent, ctx *EditorContext) Handled {
	switch ev.Named {
	case KeyEscape:
		ctx.Stack.Pop()
		if s.OnCancel != nil {
			s.OnCancel()
		}
		ctx.MarkDirty(region.Full())
		return Yes
	case KeyEnter:
		s.confirm(ctx)
		ctx.MarkDirty(region.Full())
		return Yes
	case KeyBackspace:
		s.Model.Backspace()
		ctx.MarkDirty(region.Full())
		return Yes
	case KeyLeft:
		s.Model.MoveCursor(-1)
		ctx.MarkDirty(region.Full())
		return Yes
	case KeyRight:
		s.Model.MoveCursor(1)
		ctx.MarkDirty(region.Full())
		return Yes
	case KeyUp:
		s.Model.MoveSelection(-1)
		ctx.MarkDirty(region.Full())
		return Yes
	case KeyDown:
		s.Model.MoveSelection(1)
		ctx.MarkDirty(region.Full())
		return Yes
	}
	if ev.Named == KeyNone && ev.Rune != 0 && !ev.Mods.Has(ModCtrl) && !ev.Mods.Has(ModSuper) {
		s.Model.TypeRune(ev.Rune)
		ctx.MarkDirty(region.Full())
		return Yes
	}
	return Yes // modal: swallow everything else too
}

// HandleMouse maps a click's row to a result: clicking a row selects it,
// and a double-click — or a second click on the already-selected row —
// confirms it.
func (s *SelectorTarget) HandleMouse(ev MouseEvent, ctx *EditorContext) Handled {
	if ev.Kind != MouseDown && ev.Kind != MouseDoubleClick {
		return Yes
	}
	lh := s.LineHeightPx
	if lh <= 0 {
		lh = 1
	}
	row := int(ev.Y/lh) - selectorHeaderRows
	if row < 0 || row >= s.Model.ResultCount() {
		return Yes
	}
	reClick := s.Model.Selected() == row
	s.Model.SetSelection(row)
	if ev.Kind == MouseDoubleClick || reClick {
		s.confirm(ctx)
	}
	ctx.MarkDirty(region.Full())
	return Yes
}

func (s *SelectorTarget) HandleScroll(ev ScrollDelta, ctx *EditorContext) {}
