package app

import (
	"fmt"
	"time"

	"github.com/philipparndt/tokenviz/internal/config"
	"github.com/philipparndt/tokenviz/pkg/analysis"
	"github.com/philipparndt/tokenviz/pkg/tokens"
	"github.com/philipparndt/tokenviz/pkg/watcher"
)

// setupFileWatcher reloads the records whenever the source file changes
func (app *App) setupFileWatcher(cfg *config.Config) error {
	fw, err := watcher.NewFileWatcher(cfg.WatchDebounce, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	callback := func(string) {
		app.FileWatch.mu.Lock()
		app.FileWatch.needsReload = true
		app.FileWatch.mu.Unlock()
	}

	if err := fw.Watch(app.FileWatch.sourceFile, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch file: %w", err)
	}

	fw.Start()
	app.FileWatch.fileWatcher = fw
	app.logger.Info().Str("file", app.FileWatch.sourceFile).Msg("watching for changes")
	return nil
}

// reloadIfChanged parses the source file in the background once a change
// was reported
func (app *App) reloadIfChanged() {
	fw := &app.FileWatch
	fw.mu.Lock()
	if !fw.needsReload || fw.isLoading {
		fw.mu.Unlock()
		return
	}
	fw.needsReload = false
	fw.isLoading = true
	fw.loadingStartTime = time.Now()
	fw.mu.Unlock()

	go func() {
		set, err := tokens.Parse(fw.sourceFile)

		fw.mu.Lock()
		defer fw.mu.Unlock()
		if err != nil {
			app.logger.Error().Err(err).Msg("reload failed")
			fw.isLoading = false
			return
		}
		fw.loaded = set
	}()
}

// applyLoadedRecords swaps in records parsed by reloadIfChanged. It must
// run on the main thread.
func (app *App) applyLoadedRecords() {
	fw := &app.FileWatch
	fw.mu.Lock()
	set := fw.loaded
	fw.loaded = nil
	started := fw.loadingStartTime
	fw.mu.Unlock()

	if set == nil {
		return
	}

	if err := app.session.Reload(set.Records); err != nil {
		app.logger.Error().Err(err).Msg("reload failed")
		app.flash("Reload failed: " + err.Error())
	} else {
		app.UI.stats, _ = analysis.Analyze(set.Records)
		app.UI.records = set.Records
		app.logger.Info().
			Int("tokens", len(set.Records)).
			Dur("elapsed", time.Since(started)).
			Msg("records reloaded")
		app.flash(fmt.Sprintf("Reloaded %d tokens", len(set.Records)))
	}

	fw.mu.Lock()
	fw.isLoading = false
	fw.mu.Unlock()
}
