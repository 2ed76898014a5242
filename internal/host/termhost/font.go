package termhost

import "github.com/netguy204/lite-edit/internal/platform"

// FontService is the terminal host's stand-in for a real rasterizer
//. A terminal has no pixels of its own to paint glyphs
// into, so Rasterize doesn't produce real coverage — it encodes the
// rune's UTF-8 bytes into the coverage buffer the atlas will later blit
// into its texture. GPU, also implemented in this package, decodes that
// same texture back into the rune when it needs to draw a cell (see
// gpu.go): the "atlas texture" here carries rune identity instead of
// antialiasing coverage, since this host's glyph pipeline and rasterizer
// are two ends of the same private channel rather than independent
// GPU/CPU boundaries.
type FontService struct {
	cellW, cellH float32
}

// NewFontService reports fixed monospace cell metrics in pixels (here,
// "pixels" are just character cells — the core never needs to know the
// difference since it only ever divides by these same two numbers).
func NewFontService(cellW, cellH float32) *FontService {
	return &FontService{cellW: cellW, cellH: cellH}
}

const runeCoverageSlotBytes = 4 // enough for any UTF-8 encoded rune

func (f *FontService) Rasterize(c rune, sizePx float32) (platform.GlyphCoverage, error) {
	px := make([]byte, runeCoverageSlotBytes)
	encodeRune(px, c)
	return platform.GlyphCoverage{
		Pixels:   px,
		WidthPx:  runeCoverageSlotBytes,
		HeightPx: 1,
		AdvanceX: f.cellW,
		BearingX: 0,
		BearingY: f.cellH * 0.8,
	}, nil
}

func (f *FontService) LineHeightPx(sizePx float32) float32   { return f.cellH }
func (f *FontService) AdvanceWidthPx(sizePx float32) float32 { return f.cellW }

// encodeRune writes c's UTF-8 encoding into dst (which is always sized
// runeCoverageSlotBytes, wide enough for any single code point) and
// returns the byte count.
func encodeRune(dst []byte, c rune) int {
	n := 0
	switch {
	case c < 0x80:
		dst[0] = byte(c)
		n = 1
	case c < 0x800:
		dst[0] = 0xC0 | byte(c>>6)
		dst[1] = 0x80 | byte(c&0x3F)
		n = 2
	case c < 0x10000:
		dst[0] = 0xE0 | byte(c>>12)
		dst[1] = 0x80 | byte((c>>6)&0x3F)
		dst[2] = 0x80 | byte(c&0x3F)
		n = 3
	default:
		dst[0] = 0xF0 | byte(c>>18)
		dst[1] = 0x80 | byte((c>>12)&0x3F)
		dst[2] = 0x80 | byte((c>>6)&0x3F)
		dst[3] = 0x80 | byte(c&0x3F)
		n = 4
	}
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return n
}

// decodeRune reads a rune back out of a 4-byte slot written by
// encodeRune.
func decodeRune(src []byte) rune {
	if len(src) == 0 || src[0] == 0 {
		return ' '
	}
	switch {
	case src[0] < 0x80:
		return rune(src[0])
	case src[0]&0xE0 == 0xC0:
		return rune(src[0]&0x1F)<<6 | rune(src[1]&0x3F)
	case src[0]&0xF0 == 0xE0:
		return rune(src[0]&0x0F)<<12 | rune(src[1]&0x3F)<<6 | rune(src[2]&0x3F)
	default:
		return rune(src[0]&0x07)<<18 | rune(src[1]&0x3F)<<12 | rune(src[2]&0x3F)<<6 | rune(src[3]&0x3F)
	}
}
