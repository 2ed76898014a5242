// Package termhost is the terminal-hosted reference implementation of
// the GPU/FontService/Clipboard contracts: a GPU-shaped quad consumer
// realized as a terminal cell grid, a monospace font service realized
// as fixed-width rune metrics, and a clipboard realized via OSC 52.
package termhost

import "github.com/mattn/go-runewidth"

// Cell is one terminal character cell: a rune plus the truecolor
// foreground and background the core's Renderer already resolved.
type Cell struct {
	Rune       rune
	FG, BG     [3]uint8
	HasFG      bool
	HasBG      bool
	Width      int // display width (runewidth.RuneWidth), 0 for a wide char's placeholder half
}

func emptyCell() Cell { return Cell{Rune: ' ', Width: 1} }

// grid is a 2D buffer of cells with per-row dirty tracking.
type grid struct {
	cells     []Cell
	width     int
	height    int
	dirtyRows []bool
}

func newGrid(w, h int) *grid {
	g := &grid{width: w, height: h, dirtyRows: make([]bool, h)}
	g.cells = make([]Cell, w*h)
	for i := range g.cells {
		g.cells[i] = emptyCell()
	}
	g.markAllDirty()
	return g
}

func (g *grid) index(x, y int) int { return y*g.width + x }

func (g *grid) inBounds(x, y int) bool { return x >= 0 && x < g.width && y >= 0 && y < g.height }

func (g *grid) get(x, y int) Cell {
	if !g.inBounds(x, y) {
		return emptyCell()
	}
	return g.cells[g.index(x, y)]
}

func (g *grid) set(x, y int, c Cell) {
	if !g.inBounds(x, y) {
		return
	}
	g.cells[g.index(x, y)] = c
	g.dirtyRows[y] = true
	// a wide glyph occupies a spacer cell to its right
	if c.Width == 2 && x+1 < g.width {
		g.cells[g.index(x+1, y)] = Cell{Rune: 0, Width: 0}
		g.dirtyRows[y] = true
	}
}

func (g *grid) clear() {
	for i := range g.cells {
		g.cells[i] = emptyCell()
	}
	g.markAllDirty()
}

func (g *grid) markAllDirty() {
	for i := range g.dirtyRows {
		g.dirtyRows[i] = true
	}
}

func (g *grid) clearDirty() {
	for i := range g.dirtyRows {
		g.dirtyRows[i] = false
	}
}

func (g *grid) resize(w, h int) {
	newCells := make([]Cell, w*h)
	for i := range newCells {
		newCells[i] = emptyCell()
	}
	for y := 0; y < h && y < g.height; y++ {
		for x := 0; x < w && x < g.width; x++ {
			newCells[y*w+x] = g.get(x, y)
		}
	}
	g.cells = newCells
	g.width, g.height = w, h
	g.dirtyRows = make([]bool, h)
	g.markAllDirty()
}

// cellWidth reports the display width of r, clamping zero/negative
// widths (combining marks, control chars) to 1 so the cursor still
// advances.
func cellWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		return 1
	}
	return w
}
