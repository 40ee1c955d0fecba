// Package viewer provides a fyne widget showing a token point cloud
package viewer

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/pkg/loop"
	"github.com/philipparndt/tokenviz/pkg/render"
	"github.com/philipparndt/tokenviz/pkg/scene"
	"github.com/philipparndt/tokenviz/pkg/settings"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

// scrollScale converts fyne scroll units to browser wheel pixels
const scrollScale = 10

// Options configures a TokenView
type Options struct {
	Settings *settings.Display
	FPS      int
	Logger   zerolog.Logger

	// Scheduler drives the frame loop. Nil ticks at FPS on the fyne
	// main goroutine.
	Scheduler loop.Scheduler
	Clock     hover.Clock
}

// TokenView renders a scene session into a canvas image and forwards
// pointer and keyboard input to it
type TokenView struct {
	widget.BaseWidget

	session *scene.Session
	target  *rasterTarget
	ticker  *loop.TickerScheduler
	logger  zerolog.Logger

	width, height float64
	dragging      bool

	// OnChanged is called after an input changed the display settings
	OnChanged func()
}

// NewTokenView creates an empty view
func NewTokenView(opts Options) (*TokenView, error) {
	raster, err := render.NewRaster(1, 1)
	if err != nil {
		return nil, err
	}

	v := &TokenView{
		target: newRasterTarget(raster),
		logger: opts.Logger.With().Str("component", "viewer").Logger(),
	}

	sched := opts.Scheduler
	if sched == nil {
		v.ticker = loop.NewTickerScheduler(opts.FPS, fyne.Do)
		sched = v.ticker
	}

	sessionOpts := []scene.Option{
		scene.WithScheduler(sched),
		scene.WithTarget(v.target),
		scene.WithLogger(opts.Logger),
	}
	if opts.Clock != nil {
		sessionOpts = append(sessionOpts, scene.WithClock(opts.Clock))
	}
	v.session = scene.New(opts.Settings, sessionOpts...)

	v.ExtendBaseWidget(v)
	return v, nil
}

// Session returns the underlying session
func (v *TokenView) Session() *scene.Session {
	return v.session
}

// Load replaces the shown records and starts the loop
func (v *TokenView) Load(records []tokens.Record) error {
	if err := v.session.Load(records); err != nil {
		return err
	}
	if v.width > 0 && v.height > 0 {
		v.session.Resize(v.width, v.height)
	}
	return v.session.Start()
}

// Highlight pins the particle at index
func (v *TokenView) Highlight(index int) error {
	return v.session.Highlight(index)
}

// Close stops the loop and releases the raster
func (v *TokenView) Close() {
	v.session.Close()
	if v.ticker != nil {
		v.ticker.Stop()
	}
	if err := v.target.raster.Close(); err != nil {
		v.logger.Warn().Err(err).Msg("closing raster")
	}
}

// Dragged orbits the camera
func (v *TokenView) Dragged(ev *fyne.DragEvent) {
	x, y := float64(ev.Position.X), float64(ev.Position.Y)
	if !v.dragging {
		v.dragging = true
		v.session.BeginDrag(x-float64(ev.Dragged.DX), y-float64(ev.Dragged.DY))
	}
	v.session.Drag(x, y)
}

// DragEnd finishes an orbit
func (v *TokenView) DragEnd() {
	v.dragging = false
	v.session.EndDrag()
}

// Scrolled zooms the camera
func (v *TokenView) Scrolled(ev *fyne.ScrollEvent) {
	v.session.Zoom(-float64(ev.Scrolled.DY) * scrollScale)
}

// MouseIn starts hover tracking
func (v *TokenView) MouseIn(ev *desktop.MouseEvent) {
	v.session.PointerMoved(float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseMoved updates the hover pointer
func (v *TokenView) MouseMoved(ev *desktop.MouseEvent) {
	v.session.PointerMoved(float64(ev.Position.X), float64(ev.Position.Y))
}

// MouseOut clears the hover
func (v *TokenView) MouseOut() {
	v.session.PointerLeft()
}

// Tapped focuses the view and pins the hovered particle
func (v *TokenView) Tapped(*fyne.PointEvent) {
	if c := fyne.CurrentApp(); c != nil {
		if win := c.Driver().CanvasForObject(v); win != nil {
			win.Focus(v)
		}
	}
	if v.session.Hovered() != hover.None {
		v.apply(scene.ActionPinHovered)
	}
}

// FocusGained implements fyne.Focusable
func (v *TokenView) FocusGained() {}

// FocusLost implements fyne.Focusable
func (v *TokenView) FocusLost() {}

// TypedRune implements fyne.Focusable
func (v *TokenView) TypedRune(rune) {}

// TypedKey runs the action bound to the key
func (v *TokenView) TypedKey(ev *fyne.KeyEvent) {
	if a, ok := keyActions[ev.Name]; ok {
		v.apply(a)
	}
}

func (v *TokenView) apply(a scene.Action) {
	if err := v.session.Apply(a); err != nil {
		v.logger.Debug().Err(err).Str("action", a.String()).Msg("action failed")
		return
	}
	if v.OnChanged != nil {
		v.OnChanged()
	}
}

func (v *TokenView) resize(size fyne.Size) {
	v.width, v.height = float64(size.Width), float64(size.Height)
	v.session.Resize(v.width, v.height)
}

// CreateRenderer implements fyne.Widget
func (v *TokenView) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff})
	return &tokenViewRenderer{view: v, background: bg, image: v.target.image}
}

type tokenViewRenderer struct {
	view       *TokenView
	background *canvas.Rectangle
	image      *canvas.Image
}

func (r *tokenViewRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.image.Resize(size)
	r.view.resize(size)
}

func (r *tokenViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *tokenViewRenderer) Refresh() {
	canvas.Refresh(r.image)
}

func (r *tokenViewRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.image}
}

func (r *tokenViewRenderer) Destroy() {}
