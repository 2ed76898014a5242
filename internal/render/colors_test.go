package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netguy204/lite-edit/internal/style"
)

func TestResolveColorNamed(t *testing.T) {
	r, g, b := resolveColor(style.Named(1), defaultFGIndex)
	assert.Equal(t, ansi16[1][0], r)
	assert.Equal(t, ansi16[1][1], g)
	assert.Equal(t, ansi16[1][2], b)
}

func TestResolveColorRGBPassthrough(t *testing.T) {
	r, g, b := resolveColor(style.RGB(10, 20, 30), defaultFGIndex)
	assert.Equal(t, uint8(10), r)
	assert.Equal(t, uint8(20), g)
	assert.Equal(t, uint8(30), b)
}

func TestResolveColorDefaultUsesFallback(t *testing.T) {
	r, g, b := resolveColor(style.DefaultColor(), defaultBGIndex)
	wantR, wantG, wantB := resolve256(defaultBGIndex)
	assert.Equal(t, wantR, r)
	assert.Equal(t, wantG, g)
	assert.Equal(t, wantB, b)
}

func TestResolve256GrayscaleRamp(t *testing.T) {
	r, g, b := resolve256(232)
	assert.Equal(t, uint8(8), r)
	assert.Equal(t, r, g)
	assert.Equal(t, r, b)

	r2, _, _ := resolve256(255)
	assert.Greater(t, r2, r)
}

func TestResolve256ColorCube(t *testing.T) {
	// index 16 is the cube's (0,0,0) corner -> black.
	r, g, b := resolve256(16)
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(0), b)

	// index 231 is the cube's (5,5,5) corner -> full white.
	r, g, b = resolve256(231)
	assert.Equal(t, uint8(0xFF), r)
	assert.Equal(t, uint8(0xFF), g)
	assert.Equal(t, uint8(0xFF), b)
}
