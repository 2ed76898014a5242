package highlight

import (
	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/style"
)

// HighlightedBuffer adapts a *buffer.TextBuffer plus a Highlighter into
// bufferview.BufferView — the concrete type most text-file tabs use.
// Terminal tabs instead use internal/terminal's own BufferView directly,
// since PTY output has no syntax highlighter.
type HighlightedBuffer struct {
	Buf *buffer.TextBuffer
	Hl  *Highlighter
}

// NewHighlightedBuffer wires buf and a fresh Highlighter targeting
// language/theme together; buf is used as the Highlighter's TextSource.
func NewHighlightedBuffer(buf *buffer.TextBuffer, language, theme string) *HighlightedBuffer {
	return &HighlightedBuffer{Buf: buf, Hl: New(buf, language, theme)}
}

func (h *HighlightedBuffer) LineCount() int { return h.Buf.LineCount() }

func (h *HighlightedBuffer) StyledLine(i int) (style.StyledLine, bool) {
	return h.Hl.StyledLine(uint32(i))
}

// TakeDirty forwards the buffer's accumulated dirty set and invalidates
// the highlighter's cache in lockstep: any edit that dirtied buffer
// lines must also be treated as invalidating whatever was highlighted
// there.
func (h *HighlightedBuffer) TakeDirty() buffer.DirtyLines {
	d := h.Buf.TakeDirty()
	if !d.None() {
		h.Hl.Invalidate()
	}
	return d
}

func (h *HighlightedBuffer) IsEditable() bool { return true }

func (h *HighlightedBuffer) CursorInfo() (style.CursorInfo, bool) {
	return style.CursorInfo{Position: h.Buf.Cursor(), Shape: style.CursorBlock, Blinking: true}, true
}

func (h *HighlightedBuffer) SelectionRange() (style.Position, style.Position, bool) {
	return h.Buf.SelectionRange()
}
