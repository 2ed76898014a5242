package fileindex

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func waitForIndexed(t *testing.T, fi *FileIndex, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !fi.IsIndexing() && len(fi.Query("")) >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for index to settle at >= %d entries", want)
}

// Record a selection, drop the index, and restart on the same root:
// the fresh index's empty query must surface the recorded file first.
func TestRecencyPersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rs", "")
	writeFile(t, dir, "b.rs", "")
	writeFile(t, dir, "c.rs", "")

	fi := New(dir, nil, nil)
	fi.Start()
	waitForIndexed(t, fi, 3)
	fi.RecordSelection("a.rs")
	fi.Close()

	fi2 := New(dir, nil, nil)
	fi2.Start()
	waitForIndexed(t, fi2, 3)
	defer fi2.Close()

	results := fi2.Query("")
	require.NotEmpty(t, results)
	assert.Equal(t, "a.rs", results[0])
}

func TestRecordSelectionDedups(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rs", "")
	fi := New(dir, nil, nil)
	fi.Start()
	waitForIndexed(t, fi, 1)
	defer fi.Close()

	fi.RecordSelection("a.rs")
	before := len(fi.Recency())
	fi.RecordSelection("a.rs")
	assert.Equal(t, before, len(fi.Recency()))
}

func TestCacheVersionIsMonotone(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rs", "")
	fi := New(dir, nil, nil)
	before := fi.CacheVersion()
	fi.Start()
	waitForIndexed(t, fi, 1)
	defer fi.Close()

	after := fi.CacheVersion()
	assert.GreaterOrEqual(t, after, before)

	fi.RecordSelection("a.rs")
	assert.GreaterOrEqual(t, fi.CacheVersion(), after)
}

func TestQueryEmptyOnEmptyIndexReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	fi := New(dir, nil, nil)
	fi.Start()
	waitForIndexed(t, fi, 0)
	defer fi.Close()

	assert.Empty(t, fi.Query(""))
}

func TestWalkerSkipsDotAndVendorDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, dir, filepath.Join(".git", "HEAD"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0o755))
	writeFile(t, dir, filepath.Join("node_modules", "x.js"), "")
	writeFile(t, dir, "main.go", "")

	fi := New(dir, nil, nil)
	fi.Start()
	waitForIndexed(t, fi, 1)
	defer fi.Close()

	results := fi.Query("")
	assert.Equal(t, []string{"main.go"}, results)
}
