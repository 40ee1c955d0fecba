// Package app is the native window frontend. Everything runs on the
// raylib main loop goroutine: input, loop ticks and drawing.
package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/philipparndt/tokenviz/internal/config"
	"github.com/philipparndt/tokenviz/pkg/analysis"
	"github.com/philipparndt/tokenviz/pkg/loop"
	"github.com/philipparndt/tokenviz/pkg/scene"
	"github.com/philipparndt/tokenviz/pkg/settings"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

// uiFontSize is the rasterization size; text is scaled down when drawn
const uiFontSize = 64

// Options configures Run
type Options struct {
	File     string
	Config   *config.Config
	Settings *settings.Display
	Logger   zerolog.Logger
	Watch    bool
}

// App is the window frontend state
type App struct {
	session     *scene.Session
	scheduler   *loop.ManualScheduler
	target      *rayTarget
	logger      zerolog.Logger
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState
}

// Run opens the window and blocks until it is closed
func Run(opts Options) error {
	set, err := tokens.Parse(opts.File)
	if err != nil {
		return fmt.Errorf("error loading %s: %w", opts.File, err)
	}

	cfg := opts.Config
	logger := opts.Logger.With().Str("component", "app").Logger()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "tokenviz - "+set.Name)
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	defer rl.CloseWindow()

	app := &App{
		scheduler: loop.NewManualScheduler(),
		logger:    logger,
		FileWatch: FileWatchState{sourceFile: opts.File},
		UI:        UIState{showHelp: true},
	}
	app.UI.font = rl.LoadFontFromMemory(".ttf", goregular.TTF, uiFontSize, nil)
	rl.SetTextureFilter(app.UI.font.Texture, rl.FilterBilinear)
	defer rl.UnloadFont(app.UI.font)

	app.target = newRayTarget(app.UI.font)
	app.session = scene.New(opts.Settings,
		scene.WithScheduler(app.scheduler),
		scene.WithTarget(app.target),
		scene.WithLogger(opts.Logger),
		scene.WithViewport(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())),
	)
	defer app.session.Close()

	if err := app.session.Load(set.Records); err != nil {
		return err
	}
	app.UI.stats, _ = analysis.Analyze(set.Records)
	app.UI.records = set.Records
	if err := app.session.Start(); err != nil {
		return err
	}

	if opts.Watch {
		if err := app.setupFileWatcher(cfg); err != nil {
			logger.Warn().Err(err).Msg("auto-reload will not be available")
		} else {
			defer app.FileWatch.fileWatcher.Close()
		}
	}

	for !rl.WindowShouldClose() {
		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		app.reloadIfChanged()
		app.applyLoadedRecords()

		if rl.IsWindowResized() {
			app.session.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
		}
		app.handleInput()

		rl.BeginDrawing()
		rl.ClearBackground(backgroundColor)
		// the loop tick renders into the open frame through rayTarget
		if app.scheduler.Step() == 0 {
			app.target.redraw()
		}
		app.drawUI()
		rl.EndDrawing()
	}

	return nil
}
