// Package loop drives a visualization one frame at a time. A tick expires
// the pin, advances the ambient rotation, picks the hovered particle,
// recomputes labels and renders. Everything runs on the scheduler's
// goroutine; the loop takes no locks.
package loop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/philipparndt/tokenviz/pkg/camera"
	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/pkg/labels"
	"github.com/philipparndt/tokenviz/pkg/particles"
	"github.com/philipparndt/tokenviz/pkg/render"
	"github.com/philipparndt/tokenviz/pkg/settings"
)

// ErrInvalidState is returned for a transition the current state forbids
var ErrInvalidState = errors.New("invalid loop state")

// State of the loop
type State int

const (
	Stopped State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Config wires the components a loop drives
type Config struct {
	Camera   *camera.Spherical
	Field    *particles.Field
	Overlay  *labels.Overlay
	Picker   *hover.Picker
	Settings *settings.Display
	// Target is optional; without it frames are only kept as LastFrame
	Target render.Target
	// Clock defaults to the system clock
	Clock hover.Clock

	Width, Height float64
}

// Loop is the per-frame state machine
type Loop struct {
	cfg       Config
	scheduler Scheduler
	logger    zerolog.Logger

	state  State
	cancel func()
	inTick bool

	// generation changes on every Start and Stop; a queued tick from an
	// earlier generation does nothing
	generation uint64

	width, height float64
	frame         render.Frame
	ticks         int
	errCount      int

	tickCounter  metric.Int64Counter
	errorCounter metric.Int64Counter
	duration     metric.Float64Histogram
}

// New creates a stopped loop
func New(cfg Config, scheduler Scheduler, logger zerolog.Logger) (*Loop, error) {
	if cfg.Camera == nil || cfg.Field == nil || cfg.Overlay == nil || cfg.Picker == nil || cfg.Settings == nil {
		return nil, fmt.Errorf("loop needs camera, field, overlay, picker and settings")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("loop needs a scheduler")
	}
	if cfg.Clock == nil {
		cfg.Clock = hover.SystemClock{}
	}

	l := &Loop{
		cfg:       cfg,
		scheduler: scheduler,
		logger:    logger.With().Str("component", "loop").Logger(),
		width:     cfg.Width,
		height:    cfg.Height,
	}
	l.applyViewport()

	m := meter()
	var err error

	l.tickCounter, err = m.Int64Counter(
		"loop.ticks",
		metric.WithDescription("Total frames ticked"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating tick counter: %w", err)
	}

	l.errorCounter, err = m.Int64Counter(
		"loop.tick.errors",
		metric.WithDescription("Total ticks that reported an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error counter: %w", err)
	}

	l.duration, err = m.Float64Histogram(
		"loop.tick.duration",
		metric.WithDescription("Time spent in one tick"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	return l, nil
}

// State returns the current state
func (l *Loop) State() State {
	return l.state
}

// Size returns the viewport size
func (l *Loop) Size() (width, height float64) {
	return l.width, l.height
}

// Ticks returns the number of completed ticks
func (l *Loop) Ticks() int {
	return l.ticks
}

// Errors returns the number of ticks that reported an error
func (l *Loop) Errors() int {
	return l.errCount
}

// LastFrame returns the frame built by the latest successful tick
func (l *Loop) LastFrame() render.Frame {
	return l.frame
}

// Start schedules the first tick. Only a stopped loop can start.
func (l *Loop) Start() error {
	if l.state != Stopped {
		return fmt.Errorf("start from %s: %w", l.state, ErrInvalidState)
	}
	l.state = Running
	l.generation++
	l.schedule()
	l.logger.Debug().Float64("width", l.width).Float64("height", l.height).Msg("loop started")
	return nil
}

// Pause stops the ambient rotation; ticks keep running
func (l *Loop) Pause() error {
	if l.state != Running {
		return fmt.Errorf("pause from %s: %w", l.state, ErrInvalidState)
	}
	l.state = Paused
	return nil
}

// Resume restarts the ambient rotation
func (l *Loop) Resume() error {
	if l.state != Paused {
		return fmt.Errorf("resume from %s: %w", l.state, ErrInvalidState)
	}
	l.state = Running
	return nil
}

// TogglePause switches between running and paused
func (l *Loop) TogglePause() error {
	if l.state == Paused {
		return l.Resume()
	}
	return l.Pause()
}

// Stop cancels the pending tick and releases the label markers and the
// hover annotation. Stopping a stopped loop does nothing.
func (l *Loop) Stop() {
	if l.state == Stopped {
		return
	}
	l.state = Stopped
	l.generation++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.cfg.Overlay.Release()
	l.cfg.Picker.ClearHover()
	l.logger.Debug().Int("ticks", l.ticks).Msg("loop stopped")
}

// OnResize updates the camera aspect and the render target. It does
// nothing while stopped.
func (l *Loop) OnResize(width, height float64) {
	if l.state == Stopped {
		return
	}
	l.width, l.height = width, height
	l.applyViewport()
}

func (l *Loop) applyViewport() {
	if l.width > 0 && l.height > 0 {
		l.cfg.Camera.SetAspect(l.width / l.height)
	}
	if l.cfg.Target != nil {
		l.cfg.Target.Resize(int(l.width), int(l.height))
	}
}

func (l *Loop) schedule() {
	gen := l.generation
	l.cancel = l.scheduler.RequestFrame(func() { l.tick(gen) })
}

func (l *Loop) tick(gen uint64) {
	if l.state == Stopped || gen != l.generation {
		return
	}
	if l.inTick {
		l.logger.Warn().Msg("tick re-entered, skipping")
		return
	}
	l.inTick = true
	l.cancel = nil

	start := time.Now()
	err := l.step()
	elapsed := time.Since(start)
	l.inTick = false

	ctx := context.Background()
	l.ticks++
	l.tickCounter.Add(ctx, 1)
	l.duration.Record(ctx, float64(elapsed.Microseconds())/1000)

	if err != nil {
		l.errCount++
		l.errorCounter.Add(ctx, 1)
		if errors.Is(err, camera.ErrCannotProject) {
			l.logger.Debug().Err(err).Msg("frame skipped")
		} else {
			l.logger.Error().Err(err).Int("tick", l.ticks).Msg("tick failed")
		}
	}

	if l.state != Stopped && gen == l.generation {
		l.schedule()
	}
}

func (l *Loop) step() error {
	c := l.cfg

	c.Picker.Expire(c.Clock.Now())

	view := c.Camera.View()
	if l.state == Running {
		c.Field.RotateY(c.Settings.RotationPerTick())
	}
	c.Field.SetPointSize(float64(c.Settings.ParticleSizePx()))

	if err := c.Picker.Update(view, l.width, l.height); err != nil {
		// the overlay hides every label for the same viewport
		_ = c.Overlay.Update(view, c.Field, l.width, l.height, c.Picker.Pinned())
		return err
	}
	if err := c.Overlay.Update(view, c.Field, l.width, l.height, c.Picker.Pinned()); err != nil {
		return err
	}

	frame, err := render.BuildFrame(view, c.Field, c.Overlay, c.Picker.Annotation(), l.width, l.height)
	if err != nil {
		return err
	}
	l.frame = frame

	if c.Target != nil {
		if err := c.Target.Render(frame); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}
	return nil
}
