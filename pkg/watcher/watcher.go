// Package watcher reloads a records file when it changes on disk
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce collapses the burst of events an editor save produces
const DefaultDebounce = 300 * time.Millisecond

// FileWatcher calls back once per burst of changes to a watched file. It
// watches the parent directory so files replaced by rename keep firing.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger
	debounce time.Duration

	mu        sync.Mutex
	callbacks map[string]func(string)
	timers    map[string]*time.Timer
	dirs      map[string]int
	done      chan struct{}
}

// NewFileWatcher creates a watcher; a debounce of zero uses DefaultDebounce
func NewFileWatcher(debounce time.Duration, logger zerolog.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &FileWatcher{
		watcher:   w,
		logger:    logger.With().Str("component", "watcher").Logger(),
		debounce:  debounce,
		callbacks: make(map[string]func(string)),
		timers:    make(map[string]*time.Timer),
		dirs:      make(map[string]int),
		done:      make(chan struct{}),
	}, nil
}

// Watch registers callback for file. The callback runs on a timer
// goroutine; frontends hand the reload to their UI thread themselves.
func (fw *FileWatcher) Watch(file string, callback func(string)) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	dir := filepath.Dir(abs)
	if fw.dirs[dir] == 0 {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	if _, ok := fw.callbacks[abs]; !ok {
		fw.dirs[dir]++
	}
	fw.callbacks[abs] = callback
	fw.logger.Debug().Str("file", abs).Msg("watching")
	return nil
}

// Unwatch forgets file
func (fw *FileWatcher) Unwatch(file string) error {
	abs, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, ok := fw.callbacks[abs]; !ok {
		return nil
	}
	delete(fw.callbacks, abs)
	if t, ok := fw.timers[abs]; ok {
		t.Stop()
		delete(fw.timers, abs)
	}

	dir := filepath.Dir(abs)
	fw.dirs[dir]--
	if fw.dirs[dir] <= 0 {
		delete(fw.dirs, dir)
		return fw.watcher.Remove(dir)
	}
	return nil
}

// Start processes events until Close
func (fw *FileWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					fw.handleFileChange(event.Name)
				}

			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return
				}
				fw.logger.Warn().Err(err).Msg("watcher error")

			case <-fw.done:
				return
			}
		}
	}()
}

func (fw *FileWatcher) handleFileChange(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, ok := fw.callbacks[abs]
	if !ok {
		return
	}

	if t, ok := fw.timers[abs]; ok {
		t.Stop()
	}
	fw.timers[abs] = time.AfterFunc(fw.debounce, func() {
		fw.mu.Lock()
		delete(fw.timers, abs)
		fw.mu.Unlock()

		fw.logger.Info().Str("file", abs).Msg("file changed")
		callback(abs)
	})
}

// Close stops the watcher and all pending callbacks
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for path, t := range fw.timers {
		t.Stop()
		delete(fw.timers, path)
	}
	select {
	case <-fw.done:
	default:
		close(fw.done)
	}
	fw.mu.Unlock()

	return fw.watcher.Close()
}
