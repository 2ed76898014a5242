// Package region holds DirtyRegion, the screen-space invalidation that
// the renderer actually consumes. It is distinct from buffer.DirtyLines
// (buffer-space): a DirtyRegion is the viewport-projected view of
// DirtyLines plus invalidations from cursor movement, selection change,
// scroll, and focus change.
package region

// Kind tags the shape of a DirtyRegion.
type Kind uint8

const (
	None Kind = iota
	Lines
	FullViewport
)

// DirtyRegion names the screen rows (not buffer lines) that need
// repainting this frame. It is reset to None once a frame is
// presented.
type DirtyRegion struct {
	Kind     Kind
	FromRow  uint32
	ToRow    uint32 // inclusive
}

// NoneRegion is the zero value, meaning nothing needs repainting.
func NoneRegion() DirtyRegion { return DirtyRegion{Kind: None} }

// RowRange marks screen rows [from, to] (inclusive) dirty.
func RowRange(from, to uint32) DirtyRegion {
	if from > to {
		from, to = to, from
	}
	return DirtyRegion{Kind: Lines, FromRow: from, ToRow: to}
}

// Full marks the entire viewport dirty.
func Full() DirtyRegion { return DirtyRegion{Kind: FullViewport} }

// Union merges two screen-space regions conservatively: any
// FullViewport input makes the result FullViewport; otherwise adjoining
// or overlapping Lines regions coalesce into their enclosing range. This
// mirrors buffer.Union's closed-representation contract but at one
// coarser granularity (rows, not buffer lines), since the renderer only
// ever needs "which rows to scissor," not an exact disjoint set.
func Union(a, b DirtyRegion) DirtyRegion {
	if a.Kind == None {
		return b
	}
	if b.Kind == None {
		return a
	}
	if a.Kind == FullViewport || b.Kind == FullViewport {
		return Full()
	}
	from := a.FromRow
	if b.FromRow < from {
		from = b.FromRow
	}
	to := a.ToRow
	if b.ToRow > to {
		to = b.ToRow
	}
	return RowRange(from, to)
}
