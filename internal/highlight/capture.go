// Package highlight wraps a lexer-based tokenizer behind an
// incremental-highlighter surface: a precomputed line-start index, a
// containment-keyed viewport capture cache, and the
// overlapping-capture guard that keeps emitted spans disjoint.
package highlight

import "github.com/netguy204/lite-edit/internal/style"

// Capture is one styled source-range token, chroma's analogue of a
// tree-sitter capture. Start/End are byte offsets into the source text
// a single Tokenise pass produced.
type Capture struct {
	Start, End int
	Style      style.Style
}

// mergeOverlapping is the overlapping-capture guard: captures must
// already be sorted by Start. Any capture whose Start falls before the
// running coveredUntil is dropped — coveredUntil still advances to
// cover it, so a capture fully nested inside an already-emitted one
// doesn't reappear later either. chroma's own token stream is already
// disjoint by construction, so in practice this is a pass-through; the
// no-overlapping-spans invariant must hold for whatever feeds captures
// in, not just for chroma specifically.
func mergeOverlapping(caps []Capture) []Capture {
	out := make([]Capture, 0, len(caps))
	var coveredUntil int
	for _, c := range caps {
		if c.Start < coveredUntil {
			if c.End > coveredUntil {
				coveredUntil = c.End
			}
			continue
		}
		out = append(out, c)
		if c.End > coveredUntil {
			coveredUntil = c.End
		}
	}
	return out
}
