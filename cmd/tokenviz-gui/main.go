package main

import (
	"fmt"
	"os"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/philipparndt/tokenviz/internal/config"
	"github.com/philipparndt/tokenviz/internal/logging"
	"github.com/philipparndt/tokenviz/pkg/settings"
	"github.com/philipparndt/tokenviz/pkg/tokens"
	"github.com/philipparndt/tokenviz/pkg/viewer"
)

const listTextWidth = 30

type App struct {
	window   fyne.Window
	display  *settings.Display
	view     *viewer.TokenView
	logger   zerolog.Logger
	records  []tokens.Record
	filtered []int

	list     *widget.List
	info     *widget.Label
	controls *Controls
}

// Controls mirrors the display settings
type Controls struct {
	labels   *widget.Check
	density  *widget.Select
	rotation *widget.Slider
	particle *widget.Slider
	size     *widget.Slider
	opacity  *widget.Slider
}

func main() {
	cfg, err := config.Load(os.Getenv("TOKENVIZ_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, true)

	display, err := cfg.Settings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("tokenviz")

	view, err := viewer.NewTokenView(viewer.Options{
		Settings: display,
		FPS:      cfg.Window.FPS,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appInstance := &App{
		window:  w,
		display: display,
		view:    view,
		logger:  logger,
	}
	appInstance.setupMainUI()
	w.SetOnClosed(view.Close)

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	}

	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.ShowAndRun()
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	set, err := tokens.Parse(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load records: %w", err), a.window)
		return
	}
	if err := a.view.Load(set.Records); err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	a.records = set.Records
	a.window.SetTitle("tokenviz - " + set.Name)
	a.applySearch(a.display.SearchFilter())
	a.logger.Info().Str("file", filename).Int("tokens", len(set.Records)).Msg("records loaded")
}

func (a *App) applySearch(term string) {
	a.display.SetSearchFilter(term)
	a.filtered = tokens.Filter(a.records, term)
	a.list.UnselectAll()
	a.list.Refresh()
	a.info.SetText(fmt.Sprintf("%d of %d tokens", len(a.filtered), len(a.records)))
}

func (a *App) setupMainUI() {
	search := widget.NewEntry()
	search.SetPlaceHolder("Search ID or text")
	search.OnChanged = a.applySearch

	a.info = widget.NewLabel("No records loaded")
	a.list = widget.NewList(
		func() int { return len(a.filtered) },
		func() fyne.CanvasObject { return widget.NewLabel("template") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			r := a.records[a.filtered[id]]
			obj.(*widget.Label).SetText(strconv.Itoa(r.ID) + "  " + tokens.DisplayText(r.Text, listTextWidth))
		},
	)
	a.list.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(a.filtered) {
			return
		}
		if err := a.view.Highlight(a.filtered[id]); err != nil {
			a.logger.Warn().Err(err).Msg("highlight failed")
		}
	}

	openButton := widget.NewButton("Open File", a.showFileDialog)
	pauseButton := widget.NewButton("Pause / Resume", func() {
		if err := a.view.Session().TogglePause(); err != nil {
			a.logger.Debug().Err(err).Msg("toggle pause")
		}
	})
	resetButton := widget.NewButton("Reset Camera", a.view.Session().ResetCamera)

	a.controls = a.newControls()
	a.view.OnChanged = a.syncControls

	sidebar := container.NewBorder(
		container.NewVBox(
			container.NewGridWithColumns(3, openButton, pauseButton, resetButton),
			widget.NewSeparator(),
			a.controlsForm(),
			widget.NewSeparator(),
			search,
			a.info,
		),
		nil, nil, nil,
		a.list,
	)

	split := container.NewHSplit(a.view, sidebar)
	split.SetOffset(0.72)
	a.window.SetContent(split)
}

func (a *App) newControls() *Controls {
	d := a.display
	c := &Controls{
		labels: widget.NewCheck("Show labels", d.SetLabelsVisible),
		density: widget.NewSelect(densityOptions(), func(s string) {
			if density, err := settings.ParseDensity(s); err == nil {
				d.SetLabelDensity(density)
			}
		}),
		rotation: widget.NewSlider(settings.MinRotationSpeed, settings.MaxRotationSpeed),
		particle: widget.NewSlider(1, 32),
		size:     widget.NewSlider(6, 48),
		opacity:  widget.NewSlider(0, 100),
	}

	a.controls = c
	a.syncControls()

	c.rotation.OnChanged = func(v float64) { d.SetRotationSpeed(int(v)) }
	c.particle.OnChanged = func(v float64) { d.SetParticleSize(int(v)) }
	c.size.OnChanged = func(v float64) { d.SetLabelSize(int(v)) }
	c.opacity.OnChanged = func(v float64) { d.SetLabelOpacityPercent(int(v)) }
	return c
}

// syncControls copies the settings into the controls after a key changed them
func (a *App) syncControls() {
	d, c := a.display, a.controls
	c.labels.SetChecked(d.LabelsVisible())
	c.density.SetSelected(d.LabelDensity().String())
	c.rotation.SetValue(float64(d.RotationSpeed()))
	c.particle.SetValue(float64(d.ParticleSizePx()))
	c.size.SetValue(float64(d.LabelSizePx()))
	c.opacity.SetValue(d.LabelOpacity() * 100)
}

func (a *App) controlsForm() fyne.CanvasObject {
	c := a.controls
	return container.New(layout.NewFormLayout(),
		widget.NewLabel("Labels"), c.labels,
		widget.NewLabel("Density"), c.density,
		widget.NewLabel("Rotation"), c.rotation,
		widget.NewLabel("Particle size"), c.particle,
		widget.NewLabel("Label size"), c.size,
		widget.NewLabel("Label opacity"), c.opacity,
	)
}

func densityOptions() []string {
	var opts []string
	for d := settings.DensityNone; d <= settings.DensityAll; d++ {
		opts = append(opts, d.String())
	}
	return opts
}
