package app

import (
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/tokenviz/pkg/analysis"
	"github.com/philipparndt/tokenviz/pkg/tokens"
	"github.com/philipparndt/tokenviz/pkg/watcher"
)

// InteractionState holds mouse state between frames
type InteractionState struct {
	dragging      bool
	pointerInside bool
}

// FileWatchState holds file watching and reload state. The watcher
// callback runs on its own goroutine, so the handoff fields are guarded.
type FileWatchState struct {
	sourceFile  string
	fileWatcher *watcher.FileWatcher

	mu               sync.Mutex
	needsReload      bool
	isLoading        bool
	loadingStartTime time.Time
	loaded           *tokens.Set
}

// UIState holds fonts, HUD toggles and the records shown
type UIState struct {
	font     rl.Font
	showHelp bool
	stats    *analysis.Result
	records  []tokens.Record
	message  string
	msgUntil time.Time
}
