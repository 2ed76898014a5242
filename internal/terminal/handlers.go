package terminal

import (
	"github.com/mattn/go-runewidth"

	"github.com/netguy204/lite-edit/internal/style"
)

// handlePrint places one printed rune at the cursor and advances it,
// wrapping wide characters into a two-cell span with a spacer cell.
func (tb *TerminalBuffer) handlePrint(r rune) {
	w := runewidth.RuneWidth(r)
	if w <= 0 {
		w = 1
	}
	if tb.cursorX+w > tb.g.cols {
		tb.cursorX = 0
		tb.advanceLine()
	}
	if tb.cursorY < tb.g.rows && tb.cursorX < tb.g.cols {
		tb.g.cells[tb.cursorY][tb.cursorX] = cell{r: r, sty: tb.cur, width: uint8(w)}
		if w == 2 && tb.cursorX+1 < tb.g.cols {
			tb.g.cells[tb.cursorY][tb.cursorX+1] = cell{r: 0, sty: tb.cur, width: 0}
		}
		tb.g.markDirty(tb.cursorY)
	}
	tb.cursorX += w
	if tb.cursorX >= tb.g.cols {
		tb.cursorX = tb.g.cols - 1
	}
}

func (tb *TerminalBuffer) advanceLine() {
	tb.cursorY++
	if tb.cursorY >= tb.g.rows {
		tb.g.scrollUp(&tb.scrollback, tb.cur)
		tb.cursorY = tb.g.rows - 1
		tb.dirtyAll = true
	}
}

func (tb *TerminalBuffer) handleExecute(b byte) {
	switch b {
	case '\r':
		tb.cursorX = 0
	case '\n':
		tb.advanceLine()
	case '\b':
		if tb.cursorX > 0 {
			tb.cursorX--
		}
	case '\t':
		next := ((tb.cursorX / 8) + 1) * 8
		if next >= tb.g.cols {
			next = tb.g.cols - 1
		}
		tb.cursorX = next
	}
}

func (tb *TerminalBuffer) handleCsi(params []int, private byte, intermediate []byte, final byte) {
	if private == '?' {
		switch final {
		case 'h':
			tb.applyPrivateMode(params, true)
		case 'l':
			tb.applyPrivateMode(params, false)
		}
		return
	}

	n := func(def int) int {
		if len(params) > 0 && params[0] > 0 {
			return params[0]
		}
		return def
	}

	switch final {
	case 'A':
		tb.cursorY = clampInt(tb.cursorY-n(1), 0, tb.g.rows-1)
	case 'B':
		tb.cursorY = clampInt(tb.cursorY+n(1), 0, tb.g.rows-1)
	case 'C':
		tb.cursorX = clampInt(tb.cursorX+n(1), 0, tb.g.cols-1)
	case 'D':
		tb.cursorX = clampInt(tb.cursorX-n(1), 0, tb.g.cols-1)
	case 'H', 'f':
		row, col := 1, 1
		if len(params) > 0 && params[0] > 0 {
			row = params[0]
		}
		if len(params) > 1 && params[1] > 0 {
			col = params[1]
		}
		tb.cursorY = clampInt(row-1, 0, tb.g.rows-1)
		tb.cursorX = clampInt(col-1, 0, tb.g.cols-1)
	case 'J':
		tb.eraseDisplay(n(0))
	case 'K':
		tb.eraseLine(n(0))
	case 'm':
		tb.handleSGR(params)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (tb *TerminalBuffer) eraseDisplay(mode int) {
	switch mode {
	case 0:
		tb.eraseLine(0)
		for y := tb.cursorY + 1; y < tb.g.rows; y++ {
			tb.g.clearLine(y, tb.cur)
		}
	case 1:
		tb.eraseLine(1)
		for y := 0; y < tb.cursorY; y++ {
			tb.g.clearLine(y, tb.cur)
		}
	case 2, 3:
		tb.g.clearAll(tb.cur)
		tb.dirtyAll = true
	}
}

func (tb *TerminalBuffer) eraseLine(mode int) {
	row := tb.g.cells[tb.cursorY]
	switch mode {
	case 0:
		for x := tb.cursorX; x < tb.g.cols; x++ {
			row[x] = blankCell(tb.cur)
		}
	case 1:
		for x := 0; x <= tb.cursorX && x < tb.g.cols; x++ {
			row[x] = blankCell(tb.cur)
		}
	case 2:
		for x := 0; x < tb.g.cols; x++ {
			row[x] = blankCell(tb.cur)
		}
	}
	tb.g.markDirty(tb.cursorY)
}

// handleSGR applies Select Graphic Rendition parameters to the pending
// style.
func (tb *TerminalBuffer) handleSGR(params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		switch p := params[i]; {
		case p == 0:
			tb.cur = style.Default()
		case p == 1:
			tb.cur.Bold = true
		case p == 2:
			tb.cur.Dim = true
		case p == 3:
			tb.cur.Italic = true
		case p == 4:
			tb.cur.Underline = style.UnderlineSingle
		case p == 7:
			tb.cur.Inverse = true
		case p == 9:
			tb.cur.Strikethrough = true
		case p == 22:
			tb.cur.Bold, tb.cur.Dim = false, false
		case p == 23:
			tb.cur.Italic = false
		case p == 24:
			tb.cur.Underline = style.UnderlineNone
		case p == 27:
			tb.cur.Inverse = false
		case p == 29:
			tb.cur.Strikethrough = false
		case p == 39:
			tb.cur.FG = style.DefaultColor()
		case p == 49:
			tb.cur.BG = style.DefaultColor()
		case p >= 30 && p <= 37:
			tb.cur.FG = style.Named(uint8(p - 30))
		case p >= 40 && p <= 47:
			tb.cur.BG = style.Named(uint8(p - 40))
		case p >= 90 && p <= 97:
			tb.cur.FG = style.Named(uint8(p-90) + 8)
		case p >= 100 && p <= 107:
			tb.cur.BG = style.Named(uint8(p-100) + 8)
		case p == 38:
			tb.cur.FG = tb.readExtendedColor(params, &i)
		case p == 48:
			tb.cur.BG = tb.readExtendedColor(params, &i)
		}
	}
}

// readExtendedColor consumes the `5;n` (256-color) or `2;r;g;b`
// (true-color) form starting after the 38/48 selector, advancing i.
func (tb *TerminalBuffer) readExtendedColor(params []int, i *int) style.Color {
	if *i+1 >= len(params) {
		return style.DefaultColor()
	}
	switch params[*i+1] {
	case 5:
		if *i+2 < len(params) {
			idx := uint8(params[*i+2])
			*i += 2
			return style.Indexed(idx)
		}
	case 2:
		if *i+4 < len(params) {
			r, g, b := uint8(params[*i+2]), uint8(params[*i+3]), uint8(params[*i+4])
			*i += 4
			return style.RGB(r, g, b)
		}
	}
	return style.DefaultColor()
}

func (tb *TerminalBuffer) handleOsc(params [][]byte) {
	// Window title / clipboard OSC sequences are not surfaced anywhere
	// in the editor chrome yet; ignored.
}

func (tb *TerminalBuffer) handleEscape(intermediate []byte, final byte) {
	switch final {
	case 'c': // RIS: full reset
		tb.cur = style.Default()
		tb.g.clearAll(tb.cur)
		tb.cursorX, tb.cursorY = 0, 0
		tb.dirtyAll = true
	case 'D': // IND: index (line feed without CR)
		tb.advanceLine()
	case 'M': // RI: reverse index
		if tb.cursorY > 0 {
			tb.cursorY--
		}
	case '7': // DECSC: save cursor position and style
		tb.saved = tb.cur
		tb.savedX, tb.savedY = tb.cursorX, tb.cursorY
		tb.hasSaved = true
	case '8': // DECRC: restore cursor position and style
		if tb.hasSaved {
			tb.cur = tb.saved
			tb.cursorX, tb.cursorY = tb.savedX, tb.savedY
		}
	}
}
