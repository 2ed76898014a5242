package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lite-edit.log")

	log, err := New(path, LevelInfo)
	require.NoError(t, err)
	log.Info("hello")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lite-edit.log")

	log, err := New(path, LevelWarn)
	require.NoError(t, err)
	log.Info("should not appear")
	log.Warn("should appear")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should not appear")
	assert.Contains(t, string(data), "should appear")
}

func TestNopDiscardsEverything(t *testing.T) {
	log := Nop()
	log.Info("noop")
	log.Error("still noop")
}
