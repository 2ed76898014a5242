package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	paths      []string
	version    uint64
	recorded   []string
	indexing   bool
}

func (f *fakeSource) Query(q string) []string {
	if q == "" {
		return append([]string(nil), f.paths...)
	}
	var out []string
	for _, p := range f.paths {
		if p == q || len(q) <= len(p) && p[:len(q)] == q {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeSource) CacheVersion() uint64      { return f.version }
func (f *fakeSource) RecordSelection(p string)  { f.recorded = append(f.recorded, p) }
func (f *fakeSource) IsIndexing() bool          { return f.indexing }

func TestNewPerformsInitialQuery(t *testing.T) {
	src := &fakeSource{paths: []string{"a.go", "b.go"}}
	s := New(src)
	assert.Equal(t, 2, s.ResultCount())
}

func TestTypeRuneNarrowsResults(t *testing.T) {
	src := &fakeSource{paths: []string{"alpha.go", "beta.go"}}
	s := New(src)
	s.TypeRune('a')
	assert.Equal(t, []string{"alpha.go"}, s.Results())
}

func TestTypeRuneInsertsAtCursor(t *testing.T) {
	src := &fakeSource{paths: []string{"abc.go"}}
	s := New(src)
	s.TypeRune('a')
	s.TypeRune('c')
	s.MoveCursor(-1)
	s.TypeRune('b')
	assert.Equal(t, "abc", s.Query())
	assert.Equal(t, 2, s.Cursor())
}

func TestBackspaceDeletesBeforeCursor(t *testing.T) {
	src := &fakeSource{paths: []string{"ac.go"}}
	s := New(src)
	s.TypeRune('a')
	s.TypeRune('b')
	s.TypeRune('c')
	s.MoveCursor(-1)
	s.Backspace()
	assert.Equal(t, "ac", s.Query())
	assert.Equal(t, 1, s.Cursor())
}

func TestMoveCursorClampsToQueryBounds(t *testing.T) {
	src := &fakeSource{}
	s := New(src)
	s.TypeRune('x')
	s.MoveCursor(-5)
	assert.Equal(t, 0, s.Cursor())
	s.MoveCursor(5)
	assert.Equal(t, 1, s.Cursor())
}

func TestSetSelectionClamps(t *testing.T) {
	src := &fakeSource{paths: []string{"a.go", "b.go"}}
	s := New(src)
	s.SetSelection(7)
	assert.Equal(t, 1, s.Selected())
	s.SetSelection(0)
	assert.Equal(t, 0, s.Selected())
}

func TestMoveSelectionClampsToBounds(t *testing.T) {
	src := &fakeSource{paths: []string{"a.go", "b.go", "c.go"}}
	s := New(src)
	s.MoveSelection(-5)
	assert.Equal(t, 0, s.Selected())
	s.MoveSelection(5)
	assert.Equal(t, 2, s.Selected())
}

func TestConfirmRecordsSelectionOnSource(t *testing.T) {
	src := &fakeSource{paths: []string{"a.go", "b.go"}}
	s := New(src)
	s.MoveSelection(1)
	path, ok := s.Confirm()
	require.True(t, ok)
	assert.Equal(t, "b.go", path)
	assert.Equal(t, []string{"b.go"}, src.recorded)
}

func TestConfirmOnEmptyResultsFails(t *testing.T) {
	src := &fakeSource{}
	s := New(src)
	_, ok := s.Confirm()
	assert.False(t, ok)
}

// Poll must not re-query when the version hasn't advanced, so a
// selector doesn't thrash on every drain-loop tick.
func TestPollSkipsRequeryWhenVersionUnchanged(t *testing.T) {
	src := &fakeSource{paths: []string{"a.go"}, version: 1}
	s := New(src)
	assert.Equal(t, 1, s.ResultCount())

	src.paths = append(src.paths, "b.go") // mutate without bumping version
	s.Poll()
	assert.Equal(t, 1, s.ResultCount())
}

func TestPollRequeriesWhenVersionAdvances(t *testing.T) {
	src := &fakeSource{paths: []string{"a.go"}, version: 1}
	s := New(src)

	src.paths = append(src.paths, "b.go")
	src.version = 2
	s.Poll()
	assert.Equal(t, 2, s.ResultCount())
}

func TestIndexingReflectsSource(t *testing.T) {
	src := &fakeSource{indexing: true}
	s := New(src)
	assert.True(t, s.Indexing())
}
