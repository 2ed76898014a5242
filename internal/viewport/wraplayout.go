// Package viewport implements soft-wrap row indexing and the
// scrollable window over a buffer's screen rows, plus pixel/row
// hit-testing.
package viewport

// WrapLayout maps buffer lines to screen rows given a column width. It
// is deterministic: the same inputs always produce the same outputs,
// with no cached state — a WrapLayout value carries only the
// configured wrap column; every method is a pure function of its
// arguments plus that column.
type WrapLayout struct {
	// WrapCols is None (0) for no soft wrap: every buffer line occupies
	// exactly one screen row regardless of length.
	WrapCols uint32
}

// ScreenRowsForLine returns how many screen rows a buffer line of
// lineLen characters occupies.
func (w WrapLayout) ScreenRowsForLine(lineLen int) uint32 {
	if w.WrapCols == 0 {
		return 1
	}
	if lineLen == 0 {
		return 1
	}
	rows := (uint32(lineLen) + w.WrapCols - 1) / w.WrapCols
	if rows == 0 {
		rows = 1
	}
	return rows
}

// LineLenFunc is supplied by the caller so WrapLayout never needs to know
// about TextBuffer or any other concrete storage.
type LineLenFunc func(line int) int

// TotalScreenRows sums ScreenRowsForLine across every buffer line. The
// scroll clamp is computed against this, not against the raw line
// count.
func (w WrapLayout) TotalScreenRows(lineCount int, lineLen LineLenFunc) uint32 {
	var total uint32
	for i := 0; i < lineCount; i++ {
		total += w.ScreenRowsForLine(lineLen(i))
	}
	return total
}

// BufferLineForScreenRow walks buffer lines accumulating wrap rows until
// it locates the buffer line and within-line row offset that screen row
// `row` (counted from the top of the document, row 0) falls on.
func (w WrapLayout) BufferLineForScreenRow(row uint32, lineCount int, lineLen LineLenFunc) (bufferLine int, rowOffset uint32) {
	var acc uint32
	for i := 0; i < lineCount; i++ {
		rows := w.ScreenRowsForLine(lineLen(i))
		if row < acc+rows {
			return i, row - acc
		}
		acc += rows
	}
	if lineCount == 0 {
		return 0, 0
	}
	return lineCount - 1, w.ScreenRowsForLine(lineLen(lineCount-1)) - 1
}

// ScreenRowForBufferLine returns the first screen row occupied by
// bufferLine, summing the wrap rows of every preceding line.
func (w WrapLayout) ScreenRowForBufferLine(bufferLine int, lineLen LineLenFunc) uint32 {
	var acc uint32
	for i := 0; i < bufferLine; i++ {
		acc += w.ScreenRowsForLine(lineLen(i))
	}
	return acc
}
