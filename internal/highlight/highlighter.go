package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/netguy204/lite-edit/internal/style"
)

// TextSource is the read-only view a Highlighter needs into whatever
// it's coloring — satisfied directly by *buffer.TextBuffer, kept as an
// interface so this package never imports internal/buffer.
type TextSource interface {
	LineCount() int
	LineText(i int) string
}

// Highlighter wraps a chroma lexer and theme. It maintains the
// line-start byte index (via src, already O(1) in TextBuffer) and a
// viewport capture cache whose validity check is containment, not
// equality.
type Highlighter struct {
	lexer chroma.Lexer
	theme *chroma.Style

	src        TextSource
	generation uint64

	cacheGeneration  uint64
	cacheStartLine   uint32
	cacheEndLine     uint32 // exclusive
	cachedStyled     []style.StyledLine
	cacheQueryCount  int // test/debug hook: how many times recompute ran
}

// New builds a Highlighter for the named language (a chroma lexer alias,
// e.g. "go", "python") and theme (a chroma style name, e.g. "monokai").
// Unknown names fall back to chroma's plaintext lexer / default theme
// rather than erroring — a file with no recognized extension should
// still render, just uncolored.
func New(src TextSource, language, theme string) *Highlighter {
	lx := lexers.Get(language)
	if lx == nil {
		lx = lexers.Fallback
	}
	th := styles.Get(theme)
	if th == nil {
		th = styles.Fallback
	}
	return &Highlighter{lexer: chroma.Coalesce(lx), theme: th, src: src}
}

// Invalidate bumps the generation counter; called whenever the buffer
// reports any DirtyLines. The highlighter doesn't try to patch around
// an edit — it re-tokenizes the next time its cache misses, rebuilding
// derived state lazily on next read rather than eagerly on every
// mutation.
func (h *Highlighter) Invalidate() { h.generation++ }

// EnsureRange guarantees StyledLine(i) is answerable for every i in
// [startLine, endLine) by repopulating the cache if the current one
// doesn't contain the request.
func (h *Highlighter) EnsureRange(startLine, endLine uint32) {
	if h.cacheGeneration == h.generation && h.cacheStartLine <= startLine && h.cacheEndLine >= endLine {
		return
	}
	h.recompute(startLine, endLine)
}

// captureWindow is how many lines a cache miss repopulates at once, so a
// renderer querying visible lines one at a time hits the cache on every
// line after the first.
const captureWindow = 80

// StyledLine returns the cached styled line i, populating the cache
// first if necessary. A miss widens the cache to a whole viewport-sized
// window starting at i, not just the one requested line.
func (h *Highlighter) StyledLine(i uint32) (style.StyledLine, bool) {
	if h.cacheGeneration != h.generation || i < h.cacheStartLine || i >= h.cacheEndLine {
		h.recompute(i, i+captureWindow)
	}
	idx := int(i - h.cacheStartLine)
	if idx < 0 || idx >= len(h.cachedStyled) {
		return nil, false
	}
	return h.cachedStyled[idx], true
}

// QueryCount reports how many times recompute has run; exposed for the
// cache-containment test.
func (h *Highlighter) QueryCount() int { return h.cacheQueryCount }

func (h *Highlighter) recompute(startLine, endLine uint32) {
	h.cacheQueryCount++
	n := uint32(h.src.LineCount())
	if endLine > n {
		endLine = n
	}
	if startLine > endLine {
		startLine = endLine
	}

	var text string
	lineStarts := make([]int, endLine-startLine)
	lineEnds := make([]int, endLine-startLine)
	for i, l := 0, startLine; l < endLine; i, l = i+1, l+1 {
		lineStarts[i] = len(text)
		lineText := h.src.LineText(int(l))
		text += lineText
		lineEnds[i] = len(text)
		text += "\n" // keeps the lexer's statement/line-comment handling intact
	}

	caps := h.tokenize(text)
	caps = mergeOverlapping(caps)

	lines := make([]style.StyledLine, endLine-startLine)
	for li := range lines {
		lines[li] = spansForRange(text, caps, lineStarts[li], lineEnds[li])
	}

	h.cacheGeneration = h.generation
	h.cacheStartLine = startLine
	h.cacheEndLine = endLine
	h.cachedStyled = lines
}

func (h *Highlighter) tokenize(text string) []Capture {
	iter, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}
	var caps []Capture
	offset := 0
	for _, tok := range iter.Tokens() {
		entry := h.theme.Get(tok.Type)
		caps = append(caps, Capture{
			Start: offset,
			End:   offset + len(tok.Value),
			Style: styleFromEntry(entry),
		})
		offset += len(tok.Value)
	}
	return caps
}

func styleFromEntry(e chroma.StyleEntry) style.Style {
	s := style.Default()
	if e.Colour.IsSet() {
		s.FG = style.RGB(e.Colour.Red(), e.Colour.Green(), e.Colour.Blue())
	}
	if e.Background.IsSet() {
		s.BG = style.RGB(e.Background.Red(), e.Background.Green(), e.Background.Blue())
	}
	s.Bold = e.Bold == chroma.Yes
	s.Italic = e.Italic == chroma.Yes
	s.Underline = underlineFor(e.Underline == chroma.Yes)
	return s
}

func underlineFor(on bool) style.UnderlineStyle {
	if on {
		return style.UnderlineSingle
	}
	return style.UnderlineNone
}

// spansForRange slices the captures overlapping [from, to) in text
// into a StyledLine, clipping each capture's text to the line's bounds
// and filling any gap between captures with a default-styled span, so
// StyledLine.RuneCount() equals the line's true character count even
// if a lexer ever leaves a hole.
func spansForRange(text string, caps []Capture, from, to int) style.StyledLine {
	var out style.StyledLine
	cursor := from
	for _, c := range caps {
		if c.End <= from || c.Start >= to {
			continue
		}
		start, end := c.Start, c.End
		if start < from {
			start = from
		}
		if end > to {
			end = to
		}
		if start > cursor {
			out = append(out, style.Span{Text: text[cursor:start], Style: style.Default()})
		}
		if end > start {
			out = append(out, style.Span{Text: text[start:end], Style: c.Style})
		}
		if end > cursor {
			cursor = end
		}
	}
	if cursor < to {
		out = append(out, style.Span{Text: text[cursor:to], Style: style.Default()})
	}
	return out
}
