package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netguy204/lite-edit/internal/atlas"
	"github.com/netguy204/lite-edit/internal/buffer"
	"github.com/netguy204/lite-edit/internal/panetree"
	"github.com/netguy204/lite-edit/internal/platform"
	"github.com/netguy204/lite-edit/internal/region"
	"github.com/netguy204/lite-edit/internal/style"
	"github.com/netguy204/lite-edit/internal/viewport"
)

type fakeView struct {
	lines []string
	dirty buffer.DirtyLines
}

func (v *fakeView) LineCount() int { return len(v.lines) }

func (v *fakeView) StyledLine(i int) (style.StyledLine, bool) {
	if i < 0 || i >= len(v.lines) {
		return nil, false
	}
	return style.StyledLine{{Text: v.lines[i], Style: style.Default()}}, true
}

func (v *fakeView) TakeDirty() buffer.DirtyLines {
	d := v.dirty
	v.dirty = buffer.DirtyLines{}
	return d
}

func (v *fakeView) IsEditable() bool { return true }

func (v *fakeView) CursorInfo() (style.CursorInfo, bool) {
	return style.CursorInfo{Position: style.Position{Line: 0, Col: 1}, Shape: style.CursorBlock}, true
}

func (v *fakeView) SelectionRange() (style.Position, style.Position, bool) {
	return style.Position{}, style.Position{}, false
}

type fakeFontSvc struct{}

func (fakeFontSvc) Rasterize(c rune, sizePx float32) (platform.GlyphCoverage, error) {
	return platform.GlyphCoverage{Pixels: make([]byte, 4), WidthPx: 2, HeightPx: 2, AdvanceX: 8}, nil
}
func (fakeFontSvc) LineHeightPx(sizePx float32) float32   { return 16 }
func (fakeFontSvc) AdvanceWidthPx(sizePx float32) float32 { return 8 }

type fakeGPU struct {
	presented    int
	lastFrame    platform.Frame
	uploadCalled bool
}

func (g *fakeGPU) AtlasTextureUpload(x, y, w, h int, pixels []byte) { g.uploadCalled = true }
func (g *fakeGPU) Present(frame platform.Frame) {
	g.presented++
	g.lastFrame = frame
}
func (g *fakeGPU) ViewportSize() (uint32, uint32) { return 80, 24 }

func newTestTree(view *fakeView) *panetree.Node {
	tab := &panetree.Tab{
		View:  view,
		Title: "t",
		Viewport: viewport.Viewport{
			VisibleRows:     3,
			LineHeightPx:    16,
			ContentHeightPx: 48,
		},
	}
	pane := &panetree.Pane{ID: 1, Tabs: []*panetree.Tab{tab}}
	return panetree.NewLeaf(pane)
}

func TestRenderSkipsOnNoneRegion(t *testing.T) {
	atl, err := atlas.New(fakeFontSvc{}, 12, 64)
	require.NoError(t, err)
	gpu := &fakeGPU{}
	r := New(gpu, atl, 8, 16)

	tree := newTestTree(&fakeView{lines: []string{"hi"}})
	r.Render(tree, region.NoneRegion())
	assert.Equal(t, 0, gpu.presented)
}

func TestRenderEmitsGlyphsForVisibleLines(t *testing.T) {
	atl, err := atlas.New(fakeFontSvc{}, 12, 64)
	require.NoError(t, err)
	gpu := &fakeGPU{}
	r := New(gpu, atl, 8, 16)

	tree := newTestTree(&fakeView{lines: []string{"hi", "yo"}})
	r.Render(tree, region.Full())

	assert.Equal(t, 1, gpu.presented)
	assert.NotEmpty(t, gpu.lastFrame.Glyphs)
	assert.NotEmpty(t, gpu.lastFrame.Cursor)
}

func TestRenderLinesRegionSetsScissor(t *testing.T) {
	atl, err := atlas.New(fakeFontSvc{}, 12, 64)
	require.NoError(t, err)
	gpu := &fakeGPU{}
	r := New(gpu, atl, 8, 16)

	tree := newTestTree(&fakeView{lines: []string{"a", "b", "c"}})
	r.Render(tree, region.RowRange(1, 2))

	require.Len(t, gpu.lastFrame.ScissorRows, 1)
	assert.Equal(t, float32(16), gpu.lastFrame.ScissorRows[0].Y)
	assert.Equal(t, float32(32), gpu.lastFrame.ScissorRows[0].H)
}

func TestRenderAdvancesWideGlyphsTwoCells(t *testing.T) {
	atl, err := atlas.New(fakeFontSvc{}, 12, 64)
	require.NoError(t, err)
	gpu := &fakeGPU{}
	r := New(gpu, atl, 8, 16)

	tree := newTestTree(&fakeView{lines: []string{"中a"}})
	r.Render(tree, region.Full())

	require.Len(t, gpu.lastFrame.Glyphs, 2)
	assert.Equal(t, float32(0), gpu.lastFrame.Glyphs[0].Pos[0].X)
	assert.Equal(t, float32(2*8), gpu.lastFrame.Glyphs[1].Pos[0].X, "the rune after a wide glyph sits two cells over")
}

func TestRenderReusesCacheAcrossFrames(t *testing.T) {
	atl, err := atlas.New(fakeFontSvc{}, 12, 64)
	require.NoError(t, err)
	gpu := &fakeGPU{}
	r := New(gpu, atl, 8, 16)

	view := &fakeView{lines: []string{"hi"}}
	tree := newTestTree(view)
	r.Render(tree, region.Full())
	first := len(gpu.lastFrame.Glyphs)

	// second frame with nothing dirty should produce the same glyph count
	// by reading straight from the cache (TakeDirty returns none).
	r.Render(tree, region.Full())
	assert.Equal(t, first, len(gpu.lastFrame.Glyphs))
}

func TestRenderDropsStalePaneState(t *testing.T) {
	atl, err := atlas.New(fakeFontSvc{}, 12, 64)
	require.NoError(t, err)
	gpu := &fakeGPU{}
	r := New(gpu, atl, 8, 16)

	tree := newTestTree(&fakeView{lines: []string{"hi"}})
	r.Render(tree, region.Full())
	assert.Len(t, r.panes, 1)

	// a layout with no panes (nil tree) must drop all cached pane state.
	r.Render(nil, region.Full())
	assert.Empty(t, r.panes)
}
