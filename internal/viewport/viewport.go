package viewport

import "github.com/netguy204/lite-edit/internal/style"

// Viewport is the scrollable window a Tab renders through. Invariant:
// 0 <= ScrollOffsetPx <= MaxOffsetPx at every observable state.
type Viewport struct {
	ScrollOffsetPx  float32
	VisibleRows     uint32
	WrapCols        uint32 // 0 means no soft wrap
	ContentHeightPx float32
	LineHeightPx    float32
}

func (v Viewport) wrapLayout() WrapLayout { return WrapLayout{WrapCols: v.WrapCols} }

// MaxOffsetPx computes the scroll ceiling against total screen rows
// (which account for soft wrap), not the raw buffer line count.
func (v Viewport) MaxOffsetPx(lineCount int, lineLen LineLenFunc) float32 {
	total := v.wrapLayout().TotalScreenRows(lineCount, lineLen)
	over := float32(total) - float32(v.VisibleRows)
	if over < 0 {
		over = 0
	}
	return over * v.LineHeightPx
}

// ClampScroll returns v with ScrollOffsetPx clamped into [0, max].
func (v Viewport) ClampScroll(lineCount int, lineLen LineLenFunc) Viewport {
	max := v.MaxOffsetPx(lineCount, lineLen)
	if v.ScrollOffsetPx < 0 {
		v.ScrollOffsetPx = 0
	}
	if v.ScrollOffsetPx > max {
		v.ScrollOffsetPx = max
	}
	return v
}

// FirstVisibleScreenRow returns the topmost (possibly fractional, here
// floored) screen row currently visible.
func (v Viewport) FirstVisibleScreenRow() uint32 {
	if v.LineHeightPx <= 0 {
		return 0
	}
	return uint32(v.ScrollOffsetPx / v.LineHeightPx)
}

// HitTest maps a pixel to a buffer position: a pure function of
// (pixel, viewport, wrap layout, line-len query) that never reads
// window-chrome offsets — the caller has already translated the raw
// pixel into pane-local coordinates.
func (v Viewport) HitTest(paneLocalX, paneLocalY, cellWidthPx float32, lineCount int, lineLen LineLenFunc) style.Position {
	if v.LineHeightPx <= 0 {
		return style.Position{}
	}
	firstRow := v.FirstVisibleScreenRow()
	rowOffsetPx := v.ScrollOffsetPx - float32(firstRow)*v.LineHeightPx
	targetRow := firstRow + uint32((paneLocalY+rowOffsetPx)/v.LineHeightPx)

	wl := v.wrapLayout()
	bufLine, rowWithinLine := wl.BufferLineForScreenRow(targetRow, lineCount, lineLen)
	col := uint32(0)
	if wl.WrapCols > 0 {
		col = rowWithinLine * wl.WrapCols
	}
	if cellWidthPx > 0 && paneLocalX > 0 {
		col += uint32(paneLocalX / cellWidthPx)
	}
	maxCol := uint32(lineLen(bufLine))
	if wl.WrapCols > 0 {
		// a click past the end of a wrap row stays on that row
		if rowEnd := (rowWithinLine + 1) * wl.WrapCols; col > rowEnd {
			col = rowEnd
		}
	}
	if col > maxCol {
		col = maxCol
	}
	return style.Position{Line: uint32(bufLine), Col: col}
}

// EnsureCursorVisible adjusts ScrollOffsetPx by the minimum amount needed
// to bring the cursor's screen row into [firstVisible, firstVisible +
// VisibleRows).
func (v Viewport) EnsureCursorVisible(cursorLine int, lineLen LineLenFunc) Viewport {
	wl := v.wrapLayout()
	cursorScreenRow := wl.ScreenRowForBufferLine(cursorLine, lineLen)
	first := v.FirstVisibleScreenRow()
	if cursorScreenRow < first {
		v.ScrollOffsetPx = float32(cursorScreenRow) * v.LineHeightPx
	} else if v.VisibleRows > 0 && cursorScreenRow >= first+v.VisibleRows {
		v.ScrollOffsetPx = float32(cursorScreenRow-v.VisibleRows+1) * v.LineHeightPx
	}
	return v
}
