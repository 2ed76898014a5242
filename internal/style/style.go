// Package style defines the presentation primitives shared by every
// BufferView implementation: colors, text attributes, styled spans and
// lines, and cursor presentation.
package style

// UnderlineStyle enumerates the underline renderings a Style can request.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// ColorMode selects how a Color's bytes are interpreted.
type ColorMode uint8

const (
	ColorDefault ColorMode = iota // terminal/theme default
	ColorNamed                    // one of the 16 ANSI colors
	ColorIndexed                  // 256-color palette index
	ColorRGB                      // 24-bit true color
)

// Color is a tagged color value. The zero value is ColorDefault.
type Color struct {
	Mode    ColorMode
	Index   uint8 // ColorNamed (0-15) or ColorIndexed (0-255)
	R, G, B uint8 // ColorRGB
}

// DefaultColor returns the theme/terminal default color.
func DefaultColor() Color { return Color{Mode: ColorDefault} }

// Named returns one of the 16 ANSI colors.
func Named(index uint8) Color { return Color{Mode: ColorNamed, Index: index % 16} }

// Indexed returns a 256-color palette color.
func Indexed(index uint8) Color { return Color{Mode: ColorIndexed, Index: index} }

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// Style is the full presentation of one span of text.
type Style struct {
	FG              Color
	BG              Color
	Bold            bool
	Italic          bool
	Dim             bool
	Underline       UnderlineStyle
	UnderlineColor  Color
	HasUnderlineCol bool
	Strikethrough   bool
	Inverse         bool
	Hidden          bool
}

// Default returns a style with every attribute off and default colors.
func Default() Style {
	return Style{FG: DefaultColor(), BG: DefaultColor()}
}

// Equal reports whether two styles render identically.
func (s Style) Equal(o Style) bool { return s == o }

// Span is a run of text sharing one Style. Adjacent spans in a StyledLine
// must not share an identical Style (caller responsibility; the renderer
// does not enforce it — see bufferview.StyledLine).
type Span struct {
	Text  string
	Style Style
}

// StyledLine is an ordered sequence of spans whose concatenated text
// equals the line's visible text.
type StyledLine []Span

// RuneCount returns the number of code points across all spans, which
// for any BufferView-produced StyledLine must equal the line's visible
// character count.
func (l StyledLine) RuneCount() int {
	n := 0
	for _, sp := range l {
		for range sp.Text {
			n++
		}
	}
	return n
}

// CursorShape enumerates how the caret is drawn.
type CursorShape uint8

const (
	CursorBlock CursorShape = iota
	CursorBeam
	CursorUnderline
	CursorHidden
)

// Position is (line, col) where col is a code-point index within its
// line — not a byte offset, and not a grapheme index.
type Position struct {
	Line uint32
	Col  uint32
}

// Less reports whether p sorts before o.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Col < o.Col
}

// CursorInfo describes how and where to draw the caret for a BufferView.
type CursorInfo struct {
	Position Position
	Shape    CursorShape
	Blinking bool
}
