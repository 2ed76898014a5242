// Package buffer implements the text storage layer: a gap buffer of code
// points, a line-start index over it, the accumulated dirty-line change
// set, and the TextBuffer that ties them together with cursor/selection
// state. None of this package knows about rendering, panes, or focus.
package buffer

// GapBuffer stores a document as a contiguous slice of runes with a
// movable gap. Characters before the gap concatenated with characters
// after the gap equal the document text. Moving the cursor by N
// characters copies at most |N| runes; insert/delete at the gap is
// amortized O(1).
type GapBuffer struct {
	data       []rune
	gapStart   int
	gapEnd     int // gapEnd is exclusive; [gapStart, gapEnd) is the gap
	minGrowth  int
}

// NewGapBuffer creates an empty gap buffer with a small initial gap.
func NewGapBuffer() *GapBuffer {
	const initial = 64
	return &GapBuffer{
		data:      make([]rune, initial),
		gapStart:  0,
		gapEnd:    initial,
		minGrowth: 64,
	}
}

// NewGapBufferFromString seeds a gap buffer with the given text, gap
// parked at the end (matching a freshly opened file whose cursor starts
// at byte/char 0 conceptually but whose storage gap sits wherever the
// first edit will occur; callers call MoveGapTo to place the cursor).
func NewGapBufferFromString(s string) *GapBuffer {
	runes := []rune(s)
	gb := &GapBuffer{
		data:      make([]rune, len(runes)+64),
		gapStart:  len(runes),
		gapEnd:    len(runes) + 64,
		minGrowth: 64,
	}
	copy(gb.data, runes)
	return gb
}

// Len returns the number of runes in the document (excluding the gap).
func (g *GapBuffer) Len() int {
	return len(g.data) - (g.gapEnd - g.gapStart)
}

// growGap enlarges the gap to fit at least n more runes.
func (g *GapBuffer) growGap(n int) {
	need := n - (g.gapEnd - g.gapStart)
	if need <= 0 {
		return
	}
	growth := g.minGrowth
	if need > growth {
		growth = need
	}
	newData := make([]rune, len(g.data)+growth)
	copy(newData, g.data[:g.gapStart])
	tailLen := len(g.data) - g.gapEnd
	copy(newData[len(newData)-tailLen:], g.data[g.gapEnd:])
	g.data = newData
	g.gapEnd = len(newData) - tailLen
}

// MoveGapTo relocates the gap so it starts at rune offset pos (0..Len()).
// Copies at most |pos - gapStart| runes.
func (g *GapBuffer) MoveGapTo(pos int) {
	if pos < 0 {
		pos = 0
	}
	if max := g.Len(); pos > max {
		pos = max
	}
	if pos == g.gapStart {
		return
	}
	gapLen := g.gapEnd - g.gapStart
	if pos < g.gapStart {
		// shift the [pos, gapStart) block rightward into the gap's tail
		n := g.gapStart - pos
		copy(g.data[pos+gapLen:g.gapStart+gapLen], g.data[pos:g.gapStart])
		g.gapStart = pos
		g.gapEnd = pos + gapLen
		_ = n
	} else {
		// shift the [gapEnd, gapEnd+n) block leftward into the gap's head
		n := pos - g.gapStart
		copy(g.data[g.gapStart:g.gapStart+n], g.data[g.gapEnd:g.gapEnd+n])
		g.gapStart += n
		g.gapEnd += n
	}
}

// InsertAt inserts r at rune offset pos.
func (g *GapBuffer) InsertAt(pos int, r rune) {
	g.MoveGapTo(pos)
	g.growGap(1)
	g.data[g.gapStart] = r
	g.gapStart++
}

// InsertStringAt inserts s at rune offset pos.
func (g *GapBuffer) InsertStringAt(pos int, s string) {
	runes := []rune(s)
	g.MoveGapTo(pos)
	g.growGap(len(runes))
	copy(g.data[g.gapStart:], runes)
	g.gapStart += len(runes)
}

// DeleteRange removes runes in [start, end) (end exclusive, clamped).
func (g *GapBuffer) DeleteRange(start, end int) {
	if end < start {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if max := g.Len(); end > max {
		end = max
	}
	if start >= end {
		return
	}
	g.MoveGapTo(end)
	g.gapStart -= end - start
}

// RuneAt returns the rune at document offset i.
func (g *GapBuffer) RuneAt(i int) rune {
	if i < g.gapStart {
		return g.data[i]
	}
	return g.data[i+(g.gapEnd-g.gapStart)]
}

// Slice returns the runes in [start, end) as a fresh slice.
func (g *GapBuffer) Slice(start, end int) []rune {
	if end < start {
		start, end = end, start
	}
	out := make([]rune, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, g.RuneAt(i))
	}
	return out
}

// String returns the full document text.
func (g *GapBuffer) String() string {
	return string(g.Slice(0, g.Len()))
}
