package buffer

// LineIndex is a precomputed table of line-start rune offsets, giving
// O(1) line length, line-to-offset, and offset-to-line lookups. It is
// rebuilt whenever a mutation changes line structure (a newline
// inserted or removed); a mutation confined to one line calls Patch
// instead, which only shifts the starts after the edit.
type LineIndex struct {
	starts []uint32 // starts[i] = rune offset of the first char of line i
}

// Rebuild scans the full document and recomputes every line start.
// Invariant maintained: len(starts) == line count, starts[i] <= starts[i+1].
func (li *LineIndex) Rebuild(gb *GapBuffer) {
	li.starts = li.starts[:0]
	li.starts = append(li.starts, 0)
	n := gb.Len()
	for i := 0; i < n; i++ {
		if gb.RuneAt(i) == '\n' {
			li.starts = append(li.starts, uint32(i+1))
		}
	}
}

// LineCount returns the number of lines (always >= 1).
func (li *LineIndex) LineCount() int {
	if len(li.starts) == 0 {
		return 1
	}
	return len(li.starts)
}

// Patch adjusts the index after an edit at rune offset editStart that
// changed the document length by delta runes without adding or removing
// a newline: every line start after the edited line shifts by delta,
// and no boundary is rescanned. Structural edits (a newline inserted or
// removed) must call Rebuild instead.
func (li *LineIndex) Patch(editStart, delta int) {
	if delta == 0 {
		return
	}
	line := li.OffsetToLine(editStart)
	for i := line + 1; i < len(li.starts); i++ {
		li.starts[i] = uint32(int(li.starts[i]) + delta)
	}
}

// LineToOffset returns the rune offset of the start of line i.
func (li *LineIndex) LineToOffset(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= len(li.starts) {
		if len(li.starts) == 0 {
			return 0
		}
		i = len(li.starts) - 1
	}
	return int(li.starts[i])
}

// LineLen returns the number of runes on line i, excluding its newline.
func (li *LineIndex) LineLen(i int, gb *GapBuffer) int {
	start := li.LineToOffset(i)
	var end int
	if i+1 < li.LineCount() {
		end = li.LineToOffset(i+1) - 1 // exclude the newline itself
	} else {
		end = gb.Len()
	}
	if end < start {
		end = start
	}
	return end - start
}

// OffsetToLine returns the line index containing rune offset o.
func (li *LineIndex) OffsetToLine(o int) int {
	if len(li.starts) == 0 {
		return 0
	}
	// binary search for the last start <= o
	lo, hi := 0, len(li.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if int(li.starts[mid]) <= o {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
