package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One 160-char line then nine 40-char lines, wrap at 80 cols, 5
// visible rows. Total screen rows = 2 + 9*1 = 11.
func lineLens() []int {
	lens := []int{160}
	for i := 0; i < 9; i++ {
		lens = append(lens, 40)
	}
	return lens
}

func TestScrollClampUnderWrap(t *testing.T) {
	lens := lineLens()
	lineLen := func(i int) int { return lens[i] }

	v := Viewport{VisibleRows: 5, WrapCols: 80, LineHeightPx: 10}
	total := v.wrapLayout().TotalScreenRows(len(lens), lineLen)
	require.Equal(t, uint32(11), total)

	max := v.MaxOffsetPx(len(lens), lineLen)
	assert.Equal(t, float32(6*10), max)

	v.ScrollOffsetPx = max
	v = v.ClampScroll(len(lens), lineLen)
	require.Equal(t, max, v.ScrollOffsetPx)

	pos := v.HitTest(0, 0, 1, len(lens), lineLen)
	assert.Equal(t, uint32(5), pos.Line, "clicking screen row 0 at max scroll must land on buffer line 5")
}

func TestWrapColsNoneAlwaysOneRow(t *testing.T) {
	wl := WrapLayout{} // WrapCols == 0 means no soft wrap
	for _, n := range []int{0, 1, 79, 80, 1000} {
		assert.Equal(t, uint32(1), wl.ScreenRowsForLine(n))
	}
}

func TestClampScrollNeverExceedsBounds(t *testing.T) {
	lens := []int{10, 10, 10}
	lineLen := func(i int) int { return lens[i] }
	v := Viewport{VisibleRows: 10, LineHeightPx: 10, ScrollOffsetPx: 99999}
	v = v.ClampScroll(len(lens), lineLen)
	assert.Equal(t, float32(0), v.ScrollOffsetPx, "content shorter than viewport clamps to 0")

	v.ScrollOffsetPx = -5
	v = v.ClampScroll(len(lens), lineLen)
	assert.GreaterOrEqual(t, v.ScrollOffsetPx, float32(0))
}

func TestEnsureCursorVisibleScrollsMinimally(t *testing.T) {
	lens := make([]int, 20)
	lineLen := func(i int) int { return lens[i] }
	v := Viewport{VisibleRows: 5, LineHeightPx: 10}
	v = v.EnsureCursorVisible(12, lineLen)
	first := v.FirstVisibleScreenRow()
	assert.LessOrEqual(t, first, uint32(12))
	assert.Greater(t, first+v.VisibleRows, uint32(12))
}
