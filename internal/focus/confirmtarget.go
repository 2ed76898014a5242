package focus

import "github.com/netguy204/lite-edit/internal/region"

// ConfirmDialogTarget is a modal Abandon/Cancel prompt. It owns the keyboard until answered. The default
// selection is Cancel: Enter on a freshly opened dialog keeps the tab
// open; arrows or Tab move the selection, y/n answer directly, Escape is
// always Cancel.
type ConfirmDialogTarget struct {
	Prompt string
	OnYes  func()
	OnNo   func()

	// YesSelected tracks the highlighted button; the zero value selects
	// Cancel.
	YesSelected bool
}

func (c *ConfirmDialogTarget) Name() string { return "confirm" }
func (c *ConfirmDialogTarget) Activate()    {}
func (c *ConfirmDialogTarget) Deactivate()  {}

func (c *ConfirmDialogTarget) HandleKey(ev KeyEvent, ctx *EditorContext) Handled {
	answer := func(yes bool) {
		ctx.Stack.Pop()
		if yes && c.OnYes != nil {
			c.OnYes()
		} else if !yes && c.OnNo != nil {
			c.OnNo()
		}
		ctx.MarkDirty(region.Full())
	}
	switch ev.Named {
	case KeyEscape:
		answer(false)
		return Yes
	case KeyEnter:
		answer(c.YesSelected)
		return Yes
	case KeyLeft, KeyRight, KeyTab:
		c.YesSelected = !c.YesSelected
		ctx.MarkDirty(region.Full())
		return Yes
	}
	if ev.Named == KeyNone {
		switch ev.Rune {
		case 'y', 'Y':
			answer(true)
			return Yes
		case 'n', 'N':
			answer(false)
			return Yes
		}
	}
	return Yes
}

func (c *ConfirmDialogTarget) HandleMouse(ev MouseEvent, ctx *EditorContext) Handled { return Yes }
func (c *ConfirmDialogTarget) HandleScroll(ev ScrollDelta, ctx *EditorContext)       {}
