// Package render implements Renderer, the frame producer: it walks the
// pane tree's screen layout, consults each pane's BufferView through a
// per-pane StyledLine cache, and emits background, glyph, and cursor
// quads into a platform.Frame for the host's GPU to present.
package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/netguy204/lite-edit/internal/atlas"
	"github.com/netguy204/lite-edit/internal/panetree"
	"github.com/netguy204/lite-edit/internal/platform"
	"github.com/netguy204/lite-edit/internal/region"
	"github.com/netguy204/lite-edit/internal/style"
)

// paneState is the Renderer's per-pane memory: the StyledLine cache that
// survives across frames, keyed by the pane's stable ID.
type paneState struct {
	tabTitle string // identifies which tab currently owns the cache
	cache    lineCache
}

// Renderer owns the GPU surface, the glyph atlas, and per-pane line
// caches. One Renderer serves the whole pane tree; it is not
// reconstructed on layout changes.
type Renderer struct {
	GPU   platform.GPU
	Atlas *atlas.GlyphAtlas

	CellWidthPx  float32
	CellHeightPx float32

	panes map[uint64]*paneState
	frame platform.Frame
}

// New builds a Renderer drawing through gpu, rasterizing through atl,
// with fixed monospace cell metrics in screen pixels.
func New(gpu platform.GPU, atl *atlas.GlyphAtlas, cellWidthPx, cellHeightPx float32) *Renderer {
	return &Renderer{
		GPU:          gpu,
		Atlas:        atl,
		CellWidthPx:  cellWidthPx,
		CellHeightPx: cellHeightPx,
		panes:        make(map[uint64]*paneState),
	}
}

// Render draws root into the Renderer's persistent Frame and presents it
// through GPU. A None dirty region is a no-op.
func (r *Renderer) Render(root *panetree.Node, dirty region.DirtyRegion) {
	if dirty.Kind == region.None {
		return
	}

	w, h := r.GPU.ViewportSize()
	rects := panetree.Layout(root, panetree.Rect{W: float32(w), H: float32(h)})

	r.frame.Background = r.frame.Background[:0]
	r.frame.Glyphs = r.frame.Glyphs[:0]
	r.frame.Cursor = r.frame.Cursor[:0]
	r.frame.ScissorRows = r.frame.ScissorRows[:0]

	if dirty.Kind == region.Lines {
		r.frame.ScissorRows = append(r.frame.ScissorRows, platform.ScissorRect{
			X: 0, Y: float32(dirty.FromRow) * r.CellHeightPx,
			W: float32(w), H: float32(dirty.ToRow-dirty.FromRow+1) * r.CellHeightPx,
		})
	}

	live := make(map[uint64]bool, len(rects))
	for _, pr := range rects {
		live[pr.PaneID] = true
		node := panetree.FindPane(root, pr.PaneID)
		if node == nil {
			continue
		}
		r.renderPane(node.Leaf, pr.Rect)
	}
	for id := range r.panes {
		if !live[id] {
			delete(r.panes, id)
		}
	}

	if x, y, w, h, pixels, ok := r.Atlas.TakeDirty(); ok {
		r.GPU.AtlasTextureUpload(x, y, w, h, pixels)
	}
	r.GPU.Present(r.frame)
}

func (r *Renderer) renderPane(pane *panetree.Pane, rect panetree.Rect) {
	if pane == nil || len(pane.Tabs) == 0 {
		return
	}
	idx := pane.ActiveTab
	if int(idx) >= len(pane.Tabs) {
		idx = uint32(len(pane.Tabs) - 1)
	}
	tab := pane.Tabs[idx]

	ps, ok := r.panes[pane.ID]
	if !ok || ps.tabTitle != tab.Title {
		ps = &paneState{tabTitle: tab.Title}
		r.panes[pane.ID] = ps
	}
	ps.cache.Invalidate(tab.View.TakeDirty())

	visibleRows := tab.Viewport.VisibleRows
	firstRow := tab.Viewport.FirstVisibleScreenRow()
	lineCount := tab.View.LineCount()

	for row := uint32(0); row < visibleRows; row++ {
		bufLine := int(firstRow + row)
		if bufLine >= lineCount {
			break
		}
		line, ok := ps.cache.Get(bufLine)
		if !ok {
			sl, present := tab.View.StyledLine(bufLine)
			if !present {
				continue
			}
			ps.cache.Put(bufLine, sl)
			line = sl
		}
		r.emitLine(rect, row, line)
	}

	if cur, ok := tab.View.CursorInfo(); ok {
		r.emitCursor(rect, tab, cur)
	}
}

// emitLine walks one StyledLine's spans, appending a background ColorQuad
// per cell (when its BG differs from the pane default) and one GlyphQuad
// per rune via the atlas. A wide (CJK/emoji) rune advances the column by
// its display width so everything after it stays cell-aligned.
func (r *Renderer) emitLine(rect panetree.Rect, screenRow uint32, line style.StyledLine) {
	y := rect.Y + float32(screenRow)*r.CellHeightPx
	col := float32(0)
	for _, span := range line {
		for _, ch := range span.Text {
			w := runewidth.RuneWidth(ch)
			if w < 1 {
				w = 1
			}
			x := rect.X + col*r.CellWidthPx
			r.emitCellBackground(x, y, float32(w), span.Style)
			r.emitGlyph(x, y, ch, span.Style)
			col += float32(w)
		}
	}
}

func (r *Renderer) emitCellBackground(x, y, cells float32, st style.Style) {
	if st.BG.Mode == style.ColorDefault && !st.Inverse {
		return
	}
	_, bg := resolveStylePair(st)
	r.frame.Background = append(r.frame.Background, platform.ColorQuad{
		Pos:   rectVerts(x, y, cells*r.CellWidthPx, r.CellHeightPx),
		Color: bg,
	})
}

func (r *Renderer) emitGlyph(x, y float32, ch rune, st style.Style) {
	if ch == ' ' {
		return
	}
	entry, err := r.Atlas.GetOrRasterize(ch)
	if err != nil {
		return
	}
	fg, _ := resolveStylePair(st)
	texSize := float32(r.Atlas.TextureSize())
	u0 := float32(entry.X) / texSize
	v0 := float32(entry.Y) / texSize
	u1 := float32(entry.X+entry.W) / texSize
	v1 := float32(entry.Y+entry.H) / texSize

	gx := x + entry.BearingX
	gy := y + r.CellHeightPx - entry.BearingY

	r.frame.Glyphs = append(r.frame.Glyphs, platform.GlyphQuad{
		Pos: rectVerts(gx, gy, float32(entry.W), float32(entry.H)),
		UV: [4]platform.Vec2{
			{X: u0, Y: v0}, {X: u1, Y: v0}, {X: u1, Y: v1}, {X: u0, Y: v1},
		},
		Color: fg,
	})
}

func (r *Renderer) emitCursor(rect panetree.Rect, tab *panetree.Tab, cur style.CursorInfo) {
	if cur.Shape == style.CursorHidden {
		return
	}
	firstRow := tab.Viewport.FirstVisibleScreenRow()
	if cur.Position.Line < firstRow {
		return
	}
	screenRow := cur.Position.Line - firstRow
	if screenRow >= tab.Viewport.VisibleRows {
		return
	}
	x := rect.X + float32(cur.Position.Col)*r.CellWidthPx
	y := rect.Y + float32(screenRow)*r.CellHeightPx

	w, h := r.CellWidthPx, r.CellHeightPx
	switch cur.Shape {
	case style.CursorBeam:
		w = 2
	case style.CursorUnderline:
		y += r.CellHeightPx - 2
		h = 2
	}
	r.frame.Cursor = append(r.frame.Cursor, platform.ColorQuad{
		Pos:   rectVerts(x, y, w, h),
		Color: platform.ColorRGBA8{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	})
}

// resolveStylePair resolves st's foreground/background to concrete RGBA8,
// honoring Inverse by swapping the two.
func resolveStylePair(st style.Style) (fg, bg platform.ColorRGBA8) {
	fr, fg2, fb := resolveColor(st.FG, defaultFGIndex)
	br, bgg, bb := resolveColor(st.BG, defaultBGIndex)
	if st.Inverse {
		fr, fg2, fb, br, bgg, bb = br, bgg, bb, fr, fg2, fb
	}
	return platform.ColorRGBA8{R: fr, G: fg2, B: fb, A: 0xFF},
		platform.ColorRGBA8{R: br, G: bgg, B: bb, A: 0xFF}
}

func rectVerts(x, y, w, h float32) [4]platform.Vec2 {
	return [4]platform.Vec2{
		{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h},
	}
}
