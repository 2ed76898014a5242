package focus

import (
	"strings"

	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/region"
	"github.com/netguy204/lite-edit/internal/style"
)

// FindStripTarget is the incremental-search overlay. It mutates only
// the buffer's cursor/selection, never its text. Enter jumps to the next
// match after the cursor; Escape pops the strip off the stack.
type FindStripTarget struct {
	Buf    *buffer.TextBuffer
	Query  []rune
	match  style.Position
	hasHit bool
}

func (f *FindStripTarget) Name() string { return "find-strip" }
func (f *FindStripTarget) Activate()    {}
func (f *FindStripTarget) Deactivate()  {}

// search finds the first occurrence of the query at or after `from`,
// wrapping around the document if nothing is found before the end.
func (f *FindStripTarget) search(from style.Position) (style.Position, bool) {
	q := string(f.Query)
	if q == "" {
		return style.Position{}, false
	}
	n := f.Buf.LineCount()
	for i := 0; i < n; i++ {
		line := int(from.Line) + i
		line %= n
		text := f.Buf.LineText(line)
		startCol := 0
		if i == 0 {
			startCol = int(from.Col)
		}
		runes := []rune(text)
		if startCol > len(runes) {
			continue
		}
		idx := strings.Index(string(runes[startCol:]), q)
		if idx < 0 {
			continue
		}
		col := startCol + len([]rune(string(runes[startCol:])[:idx]))
		return style.Position{Line: uint32(line), Col: uint32(col)}, true
	}
	return style.Position{}, false
}

func (f *FindStripTarget) jumpTo(p style.Position) {
	f.match = p
	f.hasHit = true
	f.Buf.ClearSelection()
	f.Buf.SetSelectionAnchor(p)
	end := p
	end.Col += uint32(len(f.Query))
	f.Buf.MoveCursor(end)
}

func (f *FindStripTarget) HandleKey(ev KeyEvent, ctx *EditorContext) Handled {
	switch ev.Named {
	case KeyEscape:
		f.Buf.ClearSelection()
		ctx.Stack.Pop()
		ctx.MarkDirty(region.Full())
		return Yes
	case KeyEnter:
		from := f.Buf.Cursor()
		if m, ok := f.search(from); ok {
			f.jumpTo(m)
		}
		ctx.MarkDirty(region.Full())
		return Yes
	case KeyBackspace:
		if len(f.Query) > 0 {
			f.Query = f.Query[:len(f.Query)-1]
		}
		ctx.MarkDirty(region.Full())
		return Yes
	}
	if ev.Named == KeyNone && ev.Rune != 0 {
		f.Query = append(f.Query, ev.Rune)
		start := style.Position{Line: 0, Col: 0}
		if f.hasHit {
			start = f.match
		}
		if m, ok := f.search(start); ok {
			f.jumpTo(m)
		}
		ctx.MarkDirty(region.Full())
		return Yes
	}
	return Yes
}

func (f *FindStripTarget) HandleMouse(ev MouseEvent, ctx *EditorContext) Handled { return Yes }
func (f *FindStripTarget) HandleScroll(ev ScrollDelta, ctx *EditorContext)       {}
