package buffer

import (
	"github.com/rivo/uniseg"

	"github.com/netguy204/lite-edit/internal/style"
)

// Position is a buffer location; col is a code-point index within its
// line.
type Position = style.Position

// TextBuffer owns one GapBuffer, one LineIndex, a cursor position, an
// optional selection anchor, and the dirty-line change set accumulated
// since the last render consumed it. It is exclusively owned by one Tab
//; there is no concurrent access to a TextBuffer.
type TextBuffer struct {
	gap        *GapBuffer
	lines      LineIndex
	cursor     Position
	anchor     *Position
	accumDirty DirtyLines
	modified   bool
}

// NewTextBuffer creates an empty buffer.
func NewTextBuffer() *TextBuffer {
	tb := &TextBuffer{gap: NewGapBuffer()}
	tb.lines.Rebuild(tb.gap)
	return tb
}

// NewTextBufferFromString seeds a buffer with content (e.g. a loaded file).
func NewTextBufferFromString(s string) *TextBuffer {
	tb := &TextBuffer{gap: NewGapBufferFromString(s)}
	tb.lines.Rebuild(tb.gap)
	return tb
}

// Cursor returns the current cursor position.
func (b *TextBuffer) Cursor() Position { return b.cursor }

// SelectionAnchor returns the selection anchor, or nil if no selection is active.
func (b *TextBuffer) SelectionAnchor() *Position { return b.anchor }

// LineCount returns the number of lines in the document.
func (b *TextBuffer) LineCount() int { return b.lines.LineCount() }

// LineLen returns the number of code points on line i.
func (b *TextBuffer) LineLen(i int) int { return b.lines.LineLen(i, b.gap) }

// LineText returns the text of line i (without its trailing newline).
func (b *TextBuffer) LineText(i int) string {
	start := b.lines.LineToOffset(i)
	return string(b.gap.Slice(start, start+b.LineLen(i)))
}

// String returns the full document text.
func (b *TextBuffer) String() string { return b.gap.String() }

// merge folds delta into the accumulated dirty set and returns delta, the
// convention every mutating operation follows.
func (b *TextBuffer) merge(delta DirtyLines) DirtyLines {
	b.accumDirty = Union(b.accumDirty, delta)
	if !delta.None() {
		b.modified = true
	}
	return delta
}

// Modified reports whether the buffer has unsaved changes since
// creation or the last ClearModified call.
func (b *TextBuffer) Modified() bool { return b.modified }

// ClearModified marks the buffer as matching what's on disk, called
// after a successful Save or immediately after load.
func (b *TextBuffer) ClearModified() { b.modified = false }

// TakeDirty returns and clears the accumulated dirty-line set. Unlike
// BufferView.take_dirty this is not the renderer-facing API; it backs it.
func (b *TextBuffer) TakeDirty() DirtyLines {
	d := b.accumDirty
	b.accumDirty = DirtyLines{}
	return d
}

func (b *TextBuffer) offsetOf(p Position) int {
	return b.lines.LineToOffset(int(p.Line)) + int(p.Col)
}

func (b *TextBuffer) clampPosition(p Position) Position {
	if int(p.Line) >= b.lines.LineCount() {
		p.Line = uint32(b.lines.LineCount() - 1)
	}
	maxCol := uint32(b.LineLen(int(p.Line)))
	if p.Col > maxCol {
		p.Col = maxCol
	}
	return p
}

// InsertChar inserts c at the cursor and advances the cursor past it.
// Inserting a newline dirties from the current line to the end of the
// document (line structure shifted); any other character dirties only
// the current line.
func (b *TextBuffer) InsertChar(c rune) DirtyLines {
	pos := b.offsetOf(b.cursor)
	b.gap.InsertAt(pos, c)
	line := b.cursor.Line
	if c == '\n' {
		b.lines.Rebuild(b.gap)
		b.cursor = Position{Line: line + 1, Col: 0}
		return b.merge(FromLineToEnd(line))
	}
	b.lines.Patch(pos, 1)
	b.cursor = Position{Line: line, Col: b.cursor.Col + 1}
	return b.merge(Single(line))
}

// InsertString inserts s at the cursor (used for paste).
func (b *TextBuffer) InsertString(s string) DirtyLines {
	var delta DirtyLines
	for _, r := range s {
		delta = Union(delta, b.InsertChar(r))
	}
	return delta
}

// graphemeBoundaryBefore returns the rune offset of the start of the
// grapheme cluster ending at offset pos (pos itself is the offset just
// after the cluster). Detecting real cluster boundaries (not code
// points) is what makes DeleteBackward remove a whole emoji-ZWJ
// sequence, combining-mark run, or regional-indicator pair in one
// keystroke.
func (b *TextBuffer) graphemeBoundaryBefore(pos int) int {
	if pos <= 0 {
		return 0
	}
	// uniseg works on strings; a document-wide grapheme scan would be
	// wasteful per keystroke, so we only decode a small window ending at
	// pos. 64 runes safely covers any real-world grapheme cluster.
	windowStart := pos - 64
	if windowStart < 0 {
		windowStart = 0
	}
	s := string(b.gap.Slice(windowStart, pos))
	last := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if s == "" {
			last = pos - len([]rune(cluster))
			break
		}
		windowStart += len([]rune(cluster))
	}
	if last < windowStart {
		// recompute precisely when the cluster boundary search degenerated
		// (can happen if the window cut a cluster in half); fall back to
		// scanning the whole prefix, which is correct but O(pos).
		full := string(b.gap.Slice(0, pos))
		boundary := 0
		state = -1
		for len(full) > 0 {
			var cluster string
			cluster, full, _, state = uniseg.FirstGraphemeClusterInString(full, state)
			if full == "" {
				boundary = pos - len([]rune(cluster))
				break
			}
			boundary += len([]rune(cluster))
		}
		return boundary
	}
	return last
}

// graphemeBoundaryAfter returns the rune offset of the end of the
// grapheme cluster starting at offset pos.
func (b *TextBuffer) graphemeBoundaryAfter(pos int) int {
	n := b.gap.Len()
	if pos >= n {
		return n
	}
	window := pos + 64
	if window > n {
		window = n
	}
	s := string(b.gap.Slice(pos, window))
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s, -1)
	return pos + len([]rune(cluster))
}

// DeleteBackward removes one grapheme cluster before the cursor. No-op at
// the start of the document.
func (b *TextBuffer) DeleteBackward() DirtyLines {
	if b.anchor != nil {
		return b.DeleteSelection()
	}
	pos := b.offsetOf(b.cursor)
	if pos == 0 {
		return DirtyLines{}
	}
	start := b.graphemeBoundaryBefore(pos)
	// a CRLF pair is a single grapheme cluster, so "contains a newline"
	// is the line-join test, not "is exactly one newline"
	crossesLine := false
	for i := start; i < pos; i++ {
		if b.gap.RuneAt(i) == '\n' {
			crossesLine = true
			break
		}
	}
	line := b.cursor.Line
	b.gap.DeleteRange(start, pos)
	if crossesLine {
		b.lines.Rebuild(b.gap)
		newLine := b.lines.OffsetToLine(start)
		b.cursor = Position{Line: uint32(newLine), Col: uint32(start - b.lines.LineToOffset(newLine))}
		return b.merge(FromLineToEnd(uint32(newLine)))
	}
	removed := uint32(pos - start)
	b.lines.Patch(start, -(pos - start))
	b.cursor = Position{Line: line, Col: b.cursor.Col - removed}
	return b.merge(Single(line))
}

// DeleteForward removes one grapheme cluster after the cursor. No-op at
// the end of the document.
func (b *TextBuffer) DeleteForward() DirtyLines {
	if b.anchor != nil {
		return b.DeleteSelection()
	}
	pos := b.offsetOf(b.cursor)
	if pos >= b.gap.Len() {
		return DirtyLines{}
	}
	end := b.graphemeBoundaryAfter(pos)
	line := b.cursor.Line
	crossesLine := false
	for i := pos; i < end; i++ {
		if b.gap.RuneAt(i) == '\n' {
			crossesLine = true
			break
		}
	}
	b.gap.DeleteRange(pos, end)
	if crossesLine {
		b.lines.Rebuild(b.gap)
		return b.merge(FromLineToEnd(line))
	}
	b.lines.Patch(pos, -(end - pos))
	return b.merge(Single(line))
}

// DeleteRange removes the text in [start, end) and collapses the cursor
// to start.
func (b *TextBuffer) DeleteRange(start, end Position) DirtyLines {
	if end.Less(start) {
		start, end = end, start
	}
	so, eo := b.offsetOf(start), b.offsetOf(end)
	multiLine := start.Line != end.Line
	b.gap.DeleteRange(so, eo)
	b.cursor = start
	b.anchor = nil
	if multiLine {
		b.lines.Rebuild(b.gap)
		return b.merge(FromLineToEnd(start.Line))
	}
	b.lines.Patch(so, -(eo - so))
	return b.merge(Single(start.Line))
}

// DeleteSelection deletes the active selection, if any, and clears it.
func (b *TextBuffer) DeleteSelection() DirtyLines {
	if b.anchor == nil {
		return DirtyLines{}
	}
	a := *b.anchor
	return b.DeleteRange(a, b.cursor)
}

// MoveCursor clamps new position into range and moves the cursor there.
// If no selection is active, the anchor stays cleared; callers that want
// to extend a selection must call SetSelectionAnchor first.
func (b *TextBuffer) MoveCursor(p Position) {
	b.cursor = b.clampPosition(p)
}

// SetSelectionAnchor pins the selection anchor at the given position
// (typically the cursor's position before a selection-extending move).
func (b *TextBuffer) SetSelectionAnchor(p Position) {
	a := b.clampPosition(p)
	b.anchor = &a
}

// ClearSelection drops the selection anchor.
func (b *TextBuffer) ClearSelection() { b.anchor = nil }

// HasSelection reports whether a selection anchor is set.
func (b *TextBuffer) HasSelection() bool { return b.anchor != nil }

// SelectionRange returns the ordered (start, end) of the active selection.
func (b *TextBuffer) SelectionRange() (Position, Position, bool) {
	if b.anchor == nil {
		return Position{}, Position{}, false
	}
	a, c := *b.anchor, b.cursor
	if c.Less(a) {
		a, c = c, a
	}
	return a, c, true
}

// charClass classifies runes for the word model.
type charClass int

const (
	classWhitespace charClass = iota
	classWord
	classOther
)

func classify(r rune) charClass {
	switch {
	case r == ' ' || r == '\t' || r == '\n' || r == '\r':
		return classWhitespace
	case r == '_' || isAlnum(r):
		return classWord
	default:
		return classOther
	}
}

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r > 127
}

// WordBoundaryLeft returns the first column <= col such that [result, col)
// is a uniform-class run within the given line's runes.
func WordBoundaryLeft(lineRunes []rune, col int) int {
	if col <= 0 || col > len(lineRunes) {
		if col > len(lineRunes) {
			col = len(lineRunes)
		}
		if col <= 0 {
			return 0
		}
	}
	cls := classify(lineRunes[col-1])
	i := col
	for i > 0 && classify(lineRunes[i-1]) == cls {
		i--
	}
	return i
}

// WordBoundaryRight is the symmetric rightward bound.
func WordBoundaryRight(lineRunes []rune, col int) int {
	if col < 0 {
		col = 0
	}
	if col >= len(lineRunes) {
		return len(lineRunes)
	}
	cls := classify(lineRunes[col])
	i := col
	for i < len(lineRunes) && classify(lineRunes[i]) == cls {
		i++
	}
	return i
}

// SelectWordAt expands the selection around column col on the given
// line using the word model, setting anchor/cursor accordingly.
// A click on an empty line (no runs) clears any selection instead.
func (b *TextBuffer) SelectWordAt(line int, col int) {
	runes := []rune(b.LineText(line))
	if len(runes) == 0 {
		b.anchor = nil
		b.cursor = Position{Line: uint32(line), Col: 0}
		return
	}
	if col > len(runes) {
		col = len(runes)
	}
	left := WordBoundaryLeft(runes, col)
	right := WordBoundaryRight(runes, col)
	if left == right {
		// col sat exactly on a boundary with nothing to its right on this
		// side; fall back to the run ending at col.
		left = WordBoundaryLeft(runes, right)
	}
	b.SetSelectionAnchor(Position{Line: uint32(line), Col: uint32(left)})
	b.cursor = Position{Line: uint32(line), Col: uint32(right)}
}

// MoveWordLeft returns the position one word-boundary left of p.
func (b *TextBuffer) MoveWordLeft(p Position) Position {
	runes := []rune(b.LineText(int(p.Line)))
	col := int(p.Col)
	if col == 0 {
		if p.Line == 0 {
			return p
		}
		prevLine := p.Line - 1
		return Position{Line: prevLine, Col: uint32(b.LineLen(int(prevLine)))}
	}
	// skip whitespace immediately to the left, then find the word start
	i := col
	for i > 0 && classify(runes[i-1]) == classWhitespace {
		i--
	}
	if i > 0 {
		i = WordBoundaryLeft(runes, i)
	}
	return Position{Line: p.Line, Col: uint32(i)}
}

// MoveWordRight returns the position one word-boundary right of p.
func (b *TextBuffer) MoveWordRight(p Position) Position {
	runes := []rune(b.LineText(int(p.Line)))
	col := int(p.Col)
	if col >= len(runes) {
		if int(p.Line)+1 >= b.LineCount() {
			return p
		}
		return Position{Line: p.Line + 1, Col: 0}
	}
	i := col
	for i < len(runes) && classify(runes[i]) == classWhitespace {
		i++
	}
	if i < len(runes) {
		i = WordBoundaryRight(runes, i)
	}
	return Position{Line: p.Line, Col: uint32(i)}
}

// MoveGraphemeLeft/Right step the cursor by one grapheme cluster rather
// than one code point, matching DeleteBackward/DeleteForward.
func (b *TextBuffer) MoveGraphemeLeft(p Position) Position {
	off := b.offsetOf(p)
	if off == 0 {
		return p
	}
	start := b.graphemeBoundaryBefore(off)
	for i := start; i < off; i++ {
		if b.gap.RuneAt(i) == '\n' {
			prevLine := p.Line - 1
			return Position{Line: prevLine, Col: uint32(start - b.lines.LineToOffset(int(prevLine)))}
		}
	}
	return Position{Line: p.Line, Col: p.Col - uint32(off-start)}
}

func (b *TextBuffer) MoveGraphemeRight(p Position) Position {
	off := b.offsetOf(p)
	if off >= b.gap.Len() {
		return p
	}
	end := b.graphemeBoundaryAfter(off)
	for i := off; i < end; i++ {
		if b.gap.RuneAt(i) == '\n' {
			return Position{Line: p.Line + 1, Col: 0}
		}
	}
	return Position{Line: p.Line, Col: p.Col + uint32(end-off)}
}
