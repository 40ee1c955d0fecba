package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tokens.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o644))

	fw, err := NewFileWatcher(150*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()

	var calls atomic.Int32
	changed := make(chan string, 4)
	require.NoError(t, fw.Watch(file, func(path string) {
		calls.Add(1)
		changed <- path
	}))
	fw.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("[ ]"), 0o644))
	}

	select {
	case path := <-changed:
		abs, _ := filepath.Abs(file)
		assert.Equal(t, abs, path)
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tokens.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o644))

	fw, err := NewFileWatcher(20*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()

	var calls atomic.Int32
	require.NoError(t, fw.Watch(file, func(string) { calls.Add(1) }))
	fw.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("[]"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestUnwatch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "tokens.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o644))

	fw, err := NewFileWatcher(0, zerolog.Nop())
	require.NoError(t, err)
	defer fw.Close()
	assert.Equal(t, DefaultDebounce, fw.debounce)

	require.NoError(t, fw.Watch(file, func(string) {}))
	require.NoError(t, fw.Unwatch(file))
	require.NoError(t, fw.Unwatch(file))
	assert.Empty(t, fw.dirs)
}
