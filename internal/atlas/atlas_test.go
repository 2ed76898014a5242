package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netguy204/lite-edit/internal/platform"
)

// fakeFont rasterizes every rune as an opaque wxh block, so packing logic
// is exercised without needing a real font file.
type fakeFont struct {
	w, h int
	fail rune
}

func (f *fakeFont) Rasterize(c rune, sizePx float32) (platform.GlyphCoverage, error) {
	if c == f.fail {
		return platform.GlyphCoverage{}, assert.AnError
	}
	px := make([]byte, f.w*f.h)
	for i := range px {
		px[i] = 0xFF
	}
	return platform.GlyphCoverage{Pixels: px, WidthPx: f.w, HeightPx: f.h, AdvanceX: float32(f.w)}, nil
}

func (f *fakeFont) LineHeightPx(sizePx float32) float32   { return float32(f.h) }
func (f *fakeFont) AdvanceWidthPx(sizePx float32) float32 { return float32(f.w) }

func TestNewPrepopulatesASCII(t *testing.T) {
	a, err := New(&fakeFont{w: 4, h: 8}, 12, 64)
	require.NoError(t, err)

	e, err := a.GetOrRasterize('A')
	require.NoError(t, err)
	assert.Equal(t, 4, e.W)
	assert.Equal(t, 8, e.H)

	// ASCII prepass already dirtied the texture and the cached lookup of
	// 'A' added nothing; one drain reports it, a second finds it empty.
	_, _, _, _, _, ok := a.TakeDirty()
	assert.True(t, ok)
	_, _, _, _, _, ok = a.TakeDirty()
	assert.False(t, ok)
}

func TestGetOrRasterizeCachesMiss(t *testing.T) {
	a, err := New(&fakeFont{w: 4, h: 8}, 12, 64)
	require.NoError(t, err)
	a.TakeDirty() // drain ASCII prepass dirt

	e1, err := a.GetOrRasterize('λ')
	require.NoError(t, err)
	x, y, w, h, _, ok := a.TakeDirty()
	assert.True(t, ok)
	assert.Equal(t, e1.X, x)
	assert.Equal(t, e1.Y, y)
	assert.Equal(t, e1.W, w)
	assert.Equal(t, e1.H, h)

	e2, err := a.GetOrRasterize('λ')
	require.NoError(t, err)
	assert.Equal(t, e1, e2)
	_, _, _, _, _, ok = a.TakeDirty()
	assert.False(t, ok, "repeat lookup of a cached glyph must not redirty")
}

func TestRowPackerWrapsAndExhausts(t *testing.T) {
	// 16x16 texture, 4x8 glyphs: 4 per row, 2 rows -> exhausted on the 9th.
	font := &fakeFont{w: 4, h: 8}
	a := &GlyphAtlas{Font: font, SizePx: 12, texture: make([]byte, 16*16), size: 16, entries: map[rune]Entry{}}

	for i := 0; i < 8; i++ {
		_, err := a.rasterizeAndPack(rune('a' + i))
		require.NoError(t, err)
	}
	_, err := a.rasterizeAndPack('z')
	assert.ErrorIs(t, err, ErrAtlasExhausted)
}

func TestRasterizeErrorPropagates(t *testing.T) {
	a, err := New(&fakeFont{w: 4, h: 8, fail: 'Z'}, 12, 64)
	require.NoError(t, err)
	_, err = a.GetOrRasterize('Z')
	assert.Error(t, err)
}

func TestRescaleClearsAndRepopulates(t *testing.T) {
	a, err := New(&fakeFont{w: 4, h: 8}, 12, 64)
	require.NoError(t, err)
	a.TakeDirty()
	_, err = a.GetOrRasterize('λ')
	require.NoError(t, err)
	a.TakeDirty()

	require.NoError(t, a.Rescale(16))
	_, ok := a.entries['λ']
	assert.False(t, ok, "rescale must drop previously-packed non-ASCII entries")

	_, ok = a.entries['A']
	assert.True(t, ok, "rescale must re-populate ASCII")

	x, y, w, h, _, ok := a.TakeDirty()
	assert.True(t, ok)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.Equal(t, 64, w)
	assert.Equal(t, 64, h)
}
