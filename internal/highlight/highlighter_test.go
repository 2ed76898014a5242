package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netguy204/lite-edit/internal/style"
)

type fakeSource struct{ lines []string }

func (f fakeSource) LineCount() int        { return len(f.lines) }
func (f fakeSource) LineText(i int) string { return f.lines[i] }

func newSource(n int, lineText string) fakeSource {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = lineText
	}
	return fakeSource{lines: lines}
}

// Highlight viewport (0..80), then request line 5 — recompute must run
// exactly once.
func TestCacheContainmentAvoidsThrashing(t *testing.T) {
	src := newSource(100, "func main() { return 1 }")
	h := New(src, "go", "monokai")

	h.EnsureRange(0, 80)
	require.Equal(t, 1, h.QueryCount())

	_, ok := h.StyledLine(5)
	require.True(t, ok)
	assert.Equal(t, 1, h.QueryCount(), "a request fully contained in the cached range must not recompute")

	_, ok = h.StyledLine(79)
	require.True(t, ok)
	assert.Equal(t, 1, h.QueryCount())
}

func TestStyledLineOutsideCacheTriggersRecompute(t *testing.T) {
	src := newSource(200, "x := 1")
	h := New(src, "go", "monokai")

	h.EnsureRange(0, 50)
	require.Equal(t, 1, h.QueryCount())

	_, ok := h.StyledLine(150)
	require.True(t, ok)
	assert.Equal(t, 2, h.QueryCount())
}

func TestInvalidateForcesRecompute(t *testing.T) {
	src := newSource(10, "a")
	h := New(src, "go", "monokai")
	h.EnsureRange(0, 10)
	require.Equal(t, 1, h.QueryCount())

	h.Invalidate()
	h.EnsureRange(0, 10)
	assert.Equal(t, 2, h.QueryCount())
}

func TestStyledLinesHaveNoOverlappingSpans(t *testing.T) {
	src := fakeSource{lines: []string{`x := "a string with // not a comment" // real comment`}}
	h := New(src, "go", "monokai")
	h.EnsureRange(0, 1)
	line, ok := h.StyledLine(0)
	require.True(t, ok)

	var rebuilt strings.Builder
	for _, sp := range line {
		rebuilt.WriteString(sp.Text)
	}
	assert.Equal(t, src.lines[0], rebuilt.String(), "spans must partition the line with no gaps or overlaps")
}

func TestMergeOverlappingDropsNestedCaptures(t *testing.T) {
	caps := []Capture{
		{Start: 0, End: 10, Style: style.Default()},
		{Start: 3, End: 6, Style: style.Default()}, // nested inside the first
		{Start: 10, End: 15, Style: style.Default()},
	}
	merged := mergeOverlapping(caps)
	require.Len(t, merged, 2)
	assert.Equal(t, 0, merged[0].Start)
	assert.Equal(t, 10, merged[0].End)
	assert.Equal(t, 10, merged[1].Start)
}
