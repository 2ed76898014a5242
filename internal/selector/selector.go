// Package selector implements the type-to-filter fuzzy-picker widget.
// It is UI glued onto a FileIndex-shaped source, not part of the focus
// model itself — internal/focus only depends on the narrow
// SelectorModel interface this package satisfies.
package selector

// FileSource is the subset of internal/fileindex.FileIndex the selector
// needs: query, the version counter that drives the streaming poll, and
// recording a confirmed pick.
type FileSource interface {
	Query(q string) []string
	CacheVersion() uint64
	RecordSelection(path string)
	IsIndexing() bool
}

// Selector is the picker's model: a query string with an in-query
// cursor, its current filtered results, and which result row is
// highlighted.
type Selector struct {
	Source FileSource

	query       []rune
	cursor      int // rune index into query, 0..len(query)
	results     []string
	selected    int
	lastVersion uint64
}

// New creates a Selector over src and performs the initial query.
func New(src FileSource) *Selector {
	s := &Selector{Source: src}
	s.refresh()
	return s
}

func (s *Selector) refresh() {
	s.results = s.Source.Query(string(s.query))
	s.lastVersion = s.Source.CacheVersion()
	s.clampSelection()
}

func (s *Selector) clampSelection() {
	if s.selected >= len(s.results) {
		s.selected = len(s.results) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// TypeRune inserts r at the in-query cursor and re-filters.
func (s *Selector) TypeRune(r rune) {
	s.query = append(s.query, 0)
	copy(s.query[s.cursor+1:], s.query[s.cursor:])
	s.query[s.cursor] = r
	s.cursor++
	s.refresh()
}

// Backspace removes the rune before the cursor, if any, and re-filters.
func (s *Selector) Backspace() {
	if s.cursor > 0 {
		s.query = append(s.query[:s.cursor-1], s.query[s.cursor:]...)
		s.cursor--
	}
	s.refresh()
}

// MoveCursor moves the in-query cursor by delta runes, clamped to the
// query's bounds.
func (s *Selector) MoveCursor(delta int) {
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor > len(s.query) {
		s.cursor = len(s.query)
	}
}

// Query returns the current query string, for rendering.
func (s *Selector) Query() string { return string(s.query) }

// Cursor returns the in-query cursor position as a rune index.
func (s *Selector) Cursor() int { return s.cursor }

// MoveSelection moves the highlighted row by delta, clamped to the
// result list's bounds.
func (s *Selector) MoveSelection(delta int) {
	s.selected += delta
	s.clampSelection()
}

// SetSelection highlights row i, clamped to the result list's bounds.
func (s *Selector) SetSelection(i int) {
	s.selected = i
	s.clampSelection()
}

// Confirm records the highlighted result as the user's pick and returns
// it. ok is false when there are no results to pick from.
func (s *Selector) Confirm() (path string, ok bool) {
	if len(s.results) == 0 {
		return "", false
	}
	path = s.results[s.selected]
	s.Source.RecordSelection(path)
	return path, true
}

// ResultCount returns how many results currently match the query.
func (s *Selector) ResultCount() int { return len(s.results) }

// Results returns the current filtered result list, for rendering.
func (s *Selector) Results() []string { return s.results }

// Selected returns the currently highlighted row index.
func (s *Selector) Selected() int { return s.selected }

// Indexing reports whether the backing FileIndex's initial walk is
// still running, so the UI can show a streaming spinner.
func (s *Selector) Indexing() bool { return s.Source.IsIndexing() }

// Poll is called once per drain-loop tick and re-queries only if the
// source's cache version has advanced since the selector's last query,
// so a live walker can populate the picker without any cross-thread
// subscription.
func (s *Selector) Poll() {
	if s.Source.CacheVersion() != s.lastVersion {
		s.refresh()
	}
}
