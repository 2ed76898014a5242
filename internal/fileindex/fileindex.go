// Package fileindex implements the background-threaded fuzzy file
// index: a walker that populates a path cache, an fsnotify watcher
// that keeps it current, fzf-style fuzzy querying, and recency
// persistence to `<root>/.lite-edit-recent`.
package fileindex

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/netguy204/lite-edit/internal/fuzzy"
)

const recencyFileName = ".lite-edit-recent"
const defaultRecencyCap = 50

var skipDirs = map[string]bool{
	"target":       true,
	"node_modules": true,
}

// FileIndex is the background-threaded fuzzy file index for one
// workspace root. All mutable state is guarded by mu; cacheVersion is a
// separate atomic counter so pollers (the selector) never need the
// lock just to check "has anything changed".
type FileIndex struct {
	root string
	log  *zap.Logger

	mu      sync.Mutex
	paths   []string // cached paths, relative to root
	recency    []string // most-recent first, deduped, capped at recencyCap
	recencyCap int

	cacheVersion atomic.Uint64
	indexing     atomic.Bool

	watcher  *fsnotify.Watcher
	wake     func()
	closeCh  chan struct{}
	wg       sync.WaitGroup
	watchErr error
}

// New constructs a FileIndex without starting it. wake is called
// (non-blocking, from a background goroutine) whenever the cache
// mutates, so the host can post a drain-loop wake event; nil is
// accepted for tests and headless use.
func New(root string, log *zap.Logger, wake func()) *FileIndex {
	if log == nil {
		log = zap.NewNop()
	}
	if wake == nil {
		wake = func() {}
	}
	return &FileIndex{root: root, log: log, wake: wake, closeCh: make(chan struct{})}
}

// Start spawns the walker thread and, best-effort, an fsnotify watcher.
// It must be called at editor startup, not on first picker open, so the walk has had time to make
// progress before the user first opens the picker. Start returns
// immediately; IsIndexing is true until the walk completes.
func (fi *FileIndex) Start() {
	fi.loadRecency()
	fi.indexing.Store(true)

	// The watcher must exist before the walker starts: the walker
	// registers each directory it visits (fsnotify is per-directory, not
	// recursive), and fi.watcher is read from the walker goroutine.
	if w, err := fsnotify.NewWatcher(); err != nil {
		fi.watchErr = err
		fi.log.Warn("file watcher unavailable, falling back to walker-only", zap.Error(err))
	} else {
		fi.watcher = w
		if err := w.Add(fi.root); err != nil {
			fi.log.Warn("file watcher unavailable, falling back to walker-only", zap.Error(err))
			_ = w.Close()
			fi.watcher = nil
		} else {
			fi.wg.Add(1)
			go fi.watch()
		}
	}

	fi.wg.Add(1)
	go fi.walk()
}

// SetRecencyCap overrides the default 50-entry recency cap (a config
// knob — see internal/config's IndexConfig). Call before Start; zero or
// negative keeps the default.
func (fi *FileIndex) SetRecencyCap(n int) {
	if n > 0 {
		fi.recencyCap = n
	}
}

func (fi *FileIndex) cap() int {
	if fi.recencyCap > 0 {
		return fi.recencyCap
	}
	return defaultRecencyCap
}

// IsIndexing reports whether the initial walk is still in progress.
func (fi *FileIndex) IsIndexing() bool { return fi.indexing.Load() }

// CacheVersion returns the monotonically increasing version; consumers
// poll it to detect a cache mutation since their last query.
func (fi *FileIndex) CacheVersion() uint64 { return fi.cacheVersion.Load() }

func (fi *FileIndex) bumpVersion() {
	fi.cacheVersion.Add(1)
	fi.wake()
}

// Close stops the watcher and joins every background thread. The
// walker itself is not cancellable; Close waits for it to finish rather than abandoning it.
func (fi *FileIndex) Close() {
	close(fi.closeCh)
	if fi.watcher != nil {
		_ = fi.watcher.Close()
	}
	fi.wg.Wait()
}

func (fi *FileIndex) walk() {
	defer fi.wg.Done()
	defer fi.indexing.Store(false)

	// One lock acquisition per directory: files accumulate in batch and
	// flush when the walk crosses into a new directory, so a consumer
	// polling cache_version sees the index fill in as the walk progresses
	// rather than all at once at the end.
	var batch []string
	batchDir := "."
	flush := func() {
		if len(batch) == 0 {
			return
		}
		fi.mu.Lock()
		for _, p := range batch {
			if !containsString(fi.paths, p) {
				fi.paths = append(fi.paths, p)
			}
		}
		fi.mu.Unlock()
		batch = batch[:0]
		fi.bumpVersion()
	}

	_ = filepath.WalkDir(fi.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // WalkerUnreadable: skip silently
		}
		rel, relErr := filepath.Rel(fi.root, path)
		if relErr != nil {
			return nil
		}
		if rel == "." {
			return nil
		}
		base := filepath.Base(rel)
		if d.IsDir() {
			if strings.HasPrefix(base, ".") || skipDirs[base] {
				return filepath.SkipDir
			}
			if fi.watcher != nil {
				_ = fi.watcher.Add(path)
			}
			return nil
		}
		if strings.HasPrefix(base, ".") {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if dir := filepath.Dir(rel); dir != batchDir {
			flush()
			batchDir = dir
		}
		batch = append(batch, rel)
		return nil
	})
	flush()
}

func (fi *FileIndex) watch() {
	defer fi.wg.Done()
	for {
		select {
		case ev, ok := <-fi.watcher.Events:
			if !ok {
				return
			}
			fi.handleFSEvent(ev)
		case err, ok := <-fi.watcher.Errors:
			if !ok {
				return
			}
			fi.log.Warn("file watcher error", zap.Error(err))
		case <-fi.closeCh:
			return
		}
	}
}

func (fi *FileIndex) handleFSEvent(ev fsnotify.Event) {
	rel, err := filepath.Rel(fi.root, ev.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)

	fi.mu.Lock()
	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		if info, statErr := os.Stat(ev.Name); statErr == nil {
			base := filepath.Base(ev.Name)
			if info.IsDir() {
				// fsnotify watches are per-directory, not recursive
				if !strings.HasPrefix(base, ".") && !skipDirs[base] {
					_ = fi.watcher.Add(ev.Name)
				}
			} else if !strings.HasPrefix(base, ".") && !containsString(fi.paths, rel) {
				fi.paths = append(fi.paths, rel)
			}
		}
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		fi.paths = removeString(fi.paths, rel)
	}
	fi.mu.Unlock()
	fi.bumpVersion()
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func removeString(s []string, v string) []string {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// scoredPath pairs a cached path with its fuzzy match score.
type scoredPath struct {
	path  string
	score int
}

// Query has two modes: an empty query
// returns the recency list (most-recent first, filtered to paths
// currently cached) followed by every other cached path alphabetically;
// a non-empty query fuzzy-matches and sorts by descending score.
func (fi *FileIndex) Query(q string) []string {
	fi.mu.Lock()
	paths := append([]string(nil), fi.paths...)
	recency := append([]string(nil), fi.recency...)
	fi.mu.Unlock()

	if q == "" {
		return queryEmpty(paths, recency)
	}

	// The match runs against the filename component only, never the
	// directory part; ties break alphabetically on the full path.
	// Recency is not a scoring factor.
	scored := make([]scoredPath, 0, len(paths))
	for _, p := range paths {
		if score, ok := fuzzy.Match(q, filepath.Base(p)); ok {
			scored = append(scored, scoredPath{path: p, score: score})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].path < scored[j].path
	})

	out := make([]string, len(scored))
	for i, s := range scored {
		out[i] = s.path
	}
	return out
}

func queryEmpty(paths, recency []string) []string {
	cached := make(map[string]bool, len(paths))
	for _, p := range paths {
		cached[p] = true
	}
	seen := make(map[string]bool, len(recency))
	out := make([]string, 0, len(paths))
	for _, r := range recency {
		if cached[r] && !seen[r] {
			out = append(out, r)
			seen[r] = true
		}
	}
	rest := make([]string, 0, len(paths))
	for _, p := range paths {
		if !seen[p] {
			rest = append(rest, p)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// RecordSelection prepends path to the in-memory recency deque,
// deduplicating and capping at the recency cap, then rewrites the recency
// file.
func (fi *FileIndex) RecordSelection(path string) {
	fi.mu.Lock()
	fi.recency = removeString(fi.recency, path)
	fi.recency = append([]string{path}, fi.recency...)
	if cap := fi.cap(); len(fi.recency) > cap {
		fi.recency = fi.recency[:cap]
	}
	recencyCopy := append([]string(nil), fi.recency...)
	fi.mu.Unlock()

	fi.writeRecency(recencyCopy)
	fi.bumpVersion()
}

// Recency returns a copy of the in-memory recency deque, most-recent
// first; exposed for tests and for a picker that wants to show it
// without going through Query.
func (fi *FileIndex) Recency() []string {
	fi.mu.Lock()
	defer fi.mu.Unlock()
	return append([]string(nil), fi.recency...)
}

func (fi *FileIndex) recencyPath() string { return filepath.Join(fi.root, recencyFileName) }

func (fi *FileIndex) loadRecency() {
	f, err := os.Open(fi.recencyPath())
	if err != nil {
		return // missing file silently treated as empty
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if cap := fi.cap(); len(lines) > cap {
		lines = lines[:cap]
	}
	fi.mu.Lock()
	fi.recency = lines
	fi.mu.Unlock()
}

func (fi *FileIndex) writeRecency(lines []string) {
	tmp := fi.recencyPath() + ".tmp"
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		fi.log.Warn("failed to write recency file", zap.Error(err))
		return
	}
	if err := os.Rename(tmp, fi.recencyPath()); err != nil {
		fi.log.Warn("failed to rename recency file", zap.Error(err))
	}
}
