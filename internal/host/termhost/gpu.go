package termhost

import "github.com/netguy204/lite-edit/internal/platform"

// GPU implements platform.GPU over a terminal cell grid. It mirrors
// the atlas texture AtlasTextureUpload hands it (see font.go: the
// texture carries rune bytes, not antialiasing coverage), then on
// Present reads each GlyphQuad's rune back out of that mirror and
// writes it into the back grid at the quad's cell position, finally
// diff-flushing the grid to the terminal.
type GPU struct {
	scr *screen

	atlasSize    int
	atlasMirror  []byte
	cellW, cellH float32
}

// NewGPU wires a GPU against the real terminal (stdout), with a texture
// mirror sized atlasSize x atlasSize (must match the atlas.GlyphAtlas
// this host's FontService backs) and fixed cell metrics in the same
// units FontService reports.
func NewGPU(atlasSize int, cellW, cellH float32) (*GPU, error) {
	scr, err := newScreen(nil)
	if err != nil {
		return nil, err
	}
	return &GPU{
		scr:         scr,
		atlasSize:   atlasSize,
		atlasMirror: make([]byte, atlasSize*atlasSize),
		cellW:       cellW,
		cellH:       cellH,
	}, nil
}

// EnterRawMode/ExitRawMode bracket the terminal-hosted session; exposed
// on GPU (rather than hidden) since cmd/lite-edit owns the process
// lifecycle and must restore the terminal on exit or panic.
func (g *GPU) EnterRawMode() error { return g.scr.enterRawMode() }
func (g *GPU) ExitRawMode() error  { return g.scr.exitRawMode() }

// ResizeChan reports terminal size changes in character cells.
func (g *GPU) ResizeChan() <-chan Size { return g.scr.ResizeChan() }

func (g *GPU) AtlasTextureUpload(x, y, w, h int, pixels []byte) {
	for row := 0; row < h; row++ {
		dstOff := (y+row)*g.atlasSize + x
		srcOff := row * w
		if dstOff < 0 || dstOff+w > len(g.atlasMirror) || srcOff+w > len(pixels) {
			continue
		}
		copy(g.atlasMirror[dstOff:dstOff+w], pixels[srcOff:srcOff+w])
	}
}

func (g *GPU) ViewportSize() (w, h uint32) {
	sz := g.scr.Size()
	return uint32(float32(sz.Width) * g.cellW), uint32(float32(sz.Height) * g.cellH)
}

// Present draws frame's quads into the back grid and flushes. Background
// quads paint cell backgrounds, glyph quads look up their rune from the
// atlas mirror and paint foreground+rune, cursor quads invert the cell
// they land on.
func (g *GPU) Present(frame platform.Frame) {
	g.clearDirtyRegion(frame.ScissorRows)
	for _, q := range frame.Background {
		x, y := g.cellAt(q.Pos[0])
		c := g.scr.back.get(x, y)
		c.BG = [3]uint8{q.Color.R, q.Color.G, q.Color.B}
		c.HasBG = true
		if c.Rune == 0 {
			c.Rune = ' '
			c.Width = 1
		}
		g.scr.back.set(x, y, c)
	}
	for _, q := range frame.Glyphs {
		x, y := g.cellAt(q.Pos[0])
		tx := int(q.UV[0].X * float32(g.atlasSize))
		ty := int(q.UV[0].Y * float32(g.atlasSize))
		r := g.lookupRune(tx, ty)
		prev := g.scr.back.get(x, y)
		prev.Rune = r
		prev.Width = cellWidth(r)
		prev.FG = [3]uint8{q.Color.R, q.Color.G, q.Color.B}
		prev.HasFG = true
		g.scr.back.set(x, y, prev)
	}
	for _, q := range frame.Cursor {
		x, y := g.cellAt(q.Pos[0])
		c := g.scr.back.get(x, y)
		c.FG, c.BG = c.BG, c.FG
		c.HasFG, c.HasBG = true, true
		if c.Rune == 0 {
			c.Rune = ' '
			c.Width = 1
		}
		g.scr.back.set(x, y, c)
	}
	g.scr.flush()
}

// clearDirtyRegion resets cells to blank before a frame's quads are
// drawn, the cell-grid equivalent of a real GPU's scissored clear. An
// empty rows list means the whole viewport is dirty (region.Full, no
// individual scissor needed).
func (g *GPU) clearDirtyRegion(rows []platform.ScissorRect) {
	sz := g.scr.Size()
	if len(rows) == 0 {
		for y := 0; y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				g.scr.back.set(x, y, emptyCell())
			}
		}
		return
	}
	for _, r := range rows {
		y0 := int(r.Y / g.cellH)
		y1 := int((r.Y + r.H) / g.cellH)
		for y := y0; y < y1 && y < sz.Height; y++ {
			for x := 0; x < sz.Width; x++ {
				g.scr.back.set(x, y, emptyCell())
			}
		}
	}
}

func (g *GPU) cellAt(p platform.Vec2) (x, y int) {
	if g.cellW <= 0 || g.cellH <= 0 {
		return 0, 0
	}
	return int(p.X / g.cellW), int(p.Y / g.cellH)
}

func (g *GPU) lookupRune(x, y int) rune {
	off := y*g.atlasSize + x
	if off < 0 || off+runeCoverageSlotBytes > len(g.atlasMirror) {
		return ' '
	}
	return decodeRune(g.atlasMirror[off : off+runeCoverageSlotBytes])
}
