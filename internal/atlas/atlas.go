// Package atlas implements GlyphAtlas, the on-demand glyph rasterizer
// and UV-rect cache: a single coverage texture with a row-packer,
// pre-populated with printable ASCII at construction, that grows on
// miss via the host's platform.FontService.
package atlas

import (
	"github.com/pkg/errors"

	"github.com/netguy204/lite-edit/internal/platform"
)

// ErrAtlasExhausted means the texture has no room left for a new
// glyph. Policy is the caller's choice (substitute tofu, or surface
// it) — in steady-state code editing this should never actually occur.
var ErrAtlasExhausted = errors.New("atlas exhausted")

// Entry describes one packed glyph: its UV rect within the atlas
// texture (in texel coordinates, not normalized — the renderer
// normalizes against TextureSize when building a GlyphQuad) plus the
// metrics needed to place it relative to the pen position.
type Entry struct {
	X, Y, W, H int // texel-space rect within the atlas texture
	AdvanceX   float32
	BearingX   float32
	BearingY   float32
}

const (
	defaultTextureSize = 1024
	asciiFirst         = 0x20
	asciiLast          = 0x7E
)

// GlyphAtlas packs rasterized glyph bitmaps into one square texture,
// left-to-right per row, wrapping to the next row when a glyph doesn't
// fit. It holds no GPU handle itself — callers read
// TakeDirty() after each GetOrRasterize call and forward the sub-rectangle
// to platform.GPU.AtlasTextureUpload.
type GlyphAtlas struct {
	Font    platform.FontService
	SizePx  float32
	texture []byte // TextureSize*TextureSize, single channel
	size    int

	entries map[rune]Entry

	penX, penY   int
	rowHeight    int

	dirtyX, dirtyY, dirtyW, dirtyH int
	hasDirty                       bool
}

// New creates a GlyphAtlas sized texSize x texSize (0 means the
// default 1024x1024) for font rasterized at sizePx, pre-populating
// printable ASCII immediately.
func New(font platform.FontService, sizePx float32, texSize int) (*GlyphAtlas, error) {
	if texSize <= 0 {
		texSize = defaultTextureSize
	}
	a := &GlyphAtlas{
		Font:    font,
		SizePx:  sizePx,
		texture: make([]byte, texSize*texSize),
		size:    texSize,
		entries: make(map[rune]Entry, asciiLast-asciiFirst+1),
	}
	for c := rune(asciiFirst); c <= asciiLast; c++ {
		if _, err := a.rasterizeAndPack(c); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// GetOrRasterize looks up c's packed entry, rasterizing and packing it
// on first use.
func (a *GlyphAtlas) GetOrRasterize(c rune) (Entry, error) {
	if e, ok := a.entries[c]; ok {
		return e, nil
	}
	return a.rasterizeAndPack(c)
}

func (a *GlyphAtlas) rasterizeAndPack(c rune) (Entry, error) {
	cov, err := a.Font.Rasterize(c, a.SizePx)
	if err != nil {
		return Entry{}, errors.Wrapf(err, "rasterize %q", c)
	}
	if a.penX+cov.WidthPx > a.size {
		a.penX = 0
		a.penY += a.rowHeight
		a.rowHeight = 0
	}
	if a.penY+cov.HeightPx > a.size {
		return Entry{}, ErrAtlasExhausted
	}
	a.blit(a.penX, a.penY, cov)
	e := Entry{
		X: a.penX, Y: a.penY, W: cov.WidthPx, H: cov.HeightPx,
		AdvanceX: cov.AdvanceX, BearingX: cov.BearingX, BearingY: cov.BearingY,
	}
	a.entries[c] = e
	a.markDirty(a.penX, a.penY, cov.WidthPx, cov.HeightPx)
	a.penX += cov.WidthPx
	if cov.HeightPx > a.rowHeight {
		a.rowHeight = cov.HeightPx
	}
	return e, nil
}

func (a *GlyphAtlas) blit(x, y int, cov platform.GlyphCoverage) {
	for row := 0; row < cov.HeightPx; row++ {
		dst := (y+row)*a.size + x
		src := row * cov.WidthPx
		copy(a.texture[dst:dst+cov.WidthPx], cov.Pixels[src:src+cov.WidthPx])
	}
}

func (a *GlyphAtlas) markDirty(x, y, w, h int) {
	if !a.hasDirty {
		a.dirtyX, a.dirtyY, a.dirtyW, a.dirtyH = x, y, w, h
		a.hasDirty = true
		return
	}
	x1 := min(a.dirtyX, x)
	y1 := min(a.dirtyY, y)
	x2 := max(a.dirtyX+a.dirtyW, x+w)
	y2 := max(a.dirtyY+a.dirtyH, y+h)
	a.dirtyX, a.dirtyY, a.dirtyW, a.dirtyH = x1, y1, x2-x1, y2-y1
}

// TakeDirty returns the sub-rectangle of the texture that changed since
// the last call (or since New, for the ASCII prepass), and the texture
// bytes to upload for it. ok is false if nothing changed.
func (a *GlyphAtlas) TakeDirty() (x, y, w, h int, pixels []byte, ok bool) {
	if !a.hasDirty {
		return 0, 0, 0, 0, nil, false
	}
	x, y, w, h = a.dirtyX, a.dirtyY, a.dirtyW, a.dirtyH
	pixels = make([]byte, w*h)
	for row := 0; row < h; row++ {
		src := (y+row)*a.size + x
		copy(pixels[row*w:(row+1)*w], a.texture[src:src+w])
	}
	a.hasDirty = false
	return x, y, w, h, pixels, true
}

// TextureSize returns the atlas texture's edge length in texels.
func (a *GlyphAtlas) TextureSize() int { return a.size }

// Rescale clears and re-populates the atlas for a new display scale
//. sizePx is
// the new rasterization size in pixels.
func (a *GlyphAtlas) Rescale(sizePx float32) error {
	a.SizePx = sizePx
	for i := range a.texture {
		a.texture[i] = 0
	}
	a.entries = make(map[rune]Entry, len(a.entries))
	a.penX, a.penY, a.rowHeight = 0, 0, 0
	a.hasDirty = false
	for c := rune(asciiFirst); c <= asciiLast; c++ {
		if _, err := a.rasterizeAndPack(c); err != nil {
			return err
		}
	}
	a.dirtyX, a.dirtyY, a.dirtyW, a.dirtyH = 0, 0, a.size, a.size
	a.hasDirty = true
	return nil
}
