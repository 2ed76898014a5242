package terminal

import "github.com/netguy204/lite-edit/internal/style"

// cell is one grid position: a rune plus the style it was written with.
// width is 2 for the leading cell of a wide (CJK/emoji) character and 0
// for its trailing spacer cell, which styledRow skips.
type cell struct {
	r     rune
	sty   style.Style
	width uint8
}

func blankCell(sty style.Style) cell { return cell{r: ' ', sty: sty, width: 1} }

// grid is a fixed-size rows x cols array of cells plus per-row dirty
// flags.
type grid struct {
	cols, rows int
	cells      [][]cell
	dirty      []bool
	anyDirty   bool
}

func newGrid(cols, rows int, sty style.Style) *grid {
	g := &grid{cols: cols, rows: rows}
	g.cells = make([][]cell, rows)
	g.dirty = make([]bool, rows)
	for y := 0; y < rows; y++ {
		g.cells[y] = make([]cell, cols)
		for x := 0; x < cols; x++ {
			g.cells[y][x] = blankCell(sty)
		}
	}
	return g
}

func (g *grid) markDirty(row int) {
	if row >= 0 && row < g.rows {
		g.dirty[row] = true
		g.anyDirty = true
	}
}

func (g *grid) markAllDirty() {
	for y := range g.dirty {
		g.dirty[y] = true
	}
	g.anyDirty = true
}

func (g *grid) clearLine(row int, sty style.Style) {
	for x := 0; x < g.cols; x++ {
		g.cells[row][x] = blankCell(sty)
	}
	g.markDirty(row)
}

func (g *grid) clearAll(sty style.Style) {
	for y := 0; y < g.rows; y++ {
		g.clearLine(y, sty)
	}
}

// scrollUp shifts every row up by one, discarding row 0 into scrollback
// (if non-nil) and filling the new bottom row with blanks.
func (g *grid) scrollUp(scrollback *[][]cell, sty style.Style) {
	top := g.cells[0]
	if scrollback != nil {
		*scrollback = append(*scrollback, top)
		top = make([]cell, g.cols)
	}
	copy(g.cells, g.cells[1:])
	for x := 0; x < g.cols; x++ {
		top[x] = blankCell(sty)
	}
	g.cells[g.rows-1] = top
	g.markAllDirty()
}

// resize rebuilds the grid at new dimensions, preserving the
// top-left-aligned overlap of old and new content.
func (g *grid) resize(cols, rows int, sty style.Style) {
	newCells := make([][]cell, rows)
	newDirty := make([]bool, rows)
	for y := 0; y < rows; y++ {
		newCells[y] = make([]cell, cols)
		for x := 0; x < cols; x++ {
			newCells[y][x] = blankCell(sty)
		}
		newDirty[y] = true
	}
	minRows, minCols := rows, cols
	if g.rows < minRows {
		minRows = g.rows
	}
	if g.cols < minCols {
		minCols = g.cols
	}
	for y := 0; y < minRows; y++ {
		copy(newCells[y][:minCols], g.cells[y][:minCols])
	}
	g.cells = newCells
	g.dirty = newDirty
	g.anyDirty = true
	g.cols, g.rows = cols, rows
}

// styledRow coalesces adjacent cells sharing a style into spans.
func styledRow(row []cell) style.StyledLine {
	var out style.StyledLine
	var cur style.Span
	have := false

	flush := func() {
		if have {
			out = append(out, cur)
			have = false
		}
	}

	for _, c := range row {
		if c.width == 0 {
			continue // trailing spacer cell of a wide character
		}
		if have && c.sty.Equal(cur.Style) {
			cur.Text += string(c.r)
			continue
		}
		flush()
		cur = style.Span{Text: string(c.r), Style: c.sty}
		have = true
	}
	flush()
	return out
}
