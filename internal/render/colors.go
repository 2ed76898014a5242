package render

import "github.com/netguy204/lite-edit/internal/style"

// ansi16 is the standard terminal 16-color RGB table: a named color
// index is only a name, this is what the renderer needs to actually
// paint one.
var ansi16 = [16][3]uint8{
	{0x00, 0x00, 0x00}, {0xCD, 0x00, 0x00}, {0x00, 0xCD, 0x00}, {0xCD, 0xCD, 0x00},
	{0x00, 0x00, 0xEE}, {0xCD, 0x00, 0xCD}, {0x00, 0xCD, 0xCD}, {0xE5, 0xE5, 0xE5},
	{0x7F, 0x7F, 0x7F}, {0xFF, 0x00, 0x00}, {0x00, 0xFF, 0x00}, {0xFF, 0xFF, 0x00},
	{0x5C, 0x5C, 0xFF}, {0xFF, 0x00, 0xFF}, {0x00, 0xFF, 0xFF}, {0xFF, 0xFF, 0xFF},
}

const (
	defaultFGIndex = 7
	defaultBGIndex = 0
)

// resolve256 expands an xterm 256-color palette index to RGB: 0-15 are
// the ansi16 table, 16-231 the 6x6x6 color cube, 232-255 a 24-step
// grayscale ramp (standard xterm layout).
func resolve256(idx uint8) (r, g, b uint8) {
	if idx < 16 {
		c := ansi16[idx]
		return c[0], c[1], c[2]
	}
	if idx >= 232 {
		level := 8 + (idx-232)*10
		return level, level, level
	}
	i := idx - 16
	levels := [6]uint8{0, 0x5F, 0x87, 0xAF, 0xD7, 0xFF}
	r = levels[i/36]
	g = levels[(i/6)%6]
	b = levels[i%6]
	return
}

// resolveColor turns a style.Color into a concrete RGB triple, falling
// back to defaultIdx for ColorDefault.
func resolveColor(c style.Color, defaultIdx uint8) (r, g, b uint8) {
	switch c.Mode {
	case style.ColorDefault:
		return resolve256(defaultIdx)
	case style.ColorNamed:
		cc := ansi16[c.Index%16]
		return cc[0], cc[1], cc[2]
	case style.ColorIndexed:
		return resolve256(c.Index)
	case style.ColorRGB:
		return c.R, c.G, c.B
	default:
		return resolve256(defaultIdx)
	}
}
