// Package scene ties the camera, particle field, label overlay, hover
// picker and frame loop of one visualization together. A Session builds
// them from records, runs them and tears them down in order: the loop is
// created after the field and overlay and stopped before either goes.
package scene

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/philipparndt/tokenviz/pkg/camera"
	"github.com/philipparndt/tokenviz/pkg/geometry"
	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/pkg/labels"
	"github.com/philipparndt/tokenviz/pkg/loop"
	"github.com/philipparndt/tokenviz/pkg/particles"
	"github.com/philipparndt/tokenviz/pkg/render"
	"github.com/philipparndt/tokenviz/pkg/settings"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

var (
	// ErrNotFound is returned when a highlight addresses no particle
	ErrNotFound = errors.New("particle not found")
	// ErrNotLoaded is returned when starting a session without records
	ErrNotLoaded = errors.New("no records loaded")
)

// Session is one visualization
type Session struct {
	settings  *settings.Display
	scheduler loop.Scheduler
	target    render.Target
	clock     hover.Clock
	logger    zerolog.Logger

	width, height      float64
	radius, theta, phi float64

	camera  *camera.Spherical
	field   *particles.Field
	overlay *labels.Overlay
	picker  *hover.Picker
	loop    *loop.Loop
}

// New creates an empty session sharing the given display settings
func New(s *settings.Display, opts ...Option) *Session {
	if s == nil {
		s = settings.New()
	}
	sess := &Session{
		settings: s,
		clock:    hover.SystemClock{},
		logger:   zerolog.Nop(),
		radius:   camera.DefaultRadius,
		theta:    camera.DefaultTheta,
		phi:      camera.DefaultPhi,
	}
	for _, opt := range opts {
		opt(sess)
	}
	if sess.scheduler == nil {
		sess.scheduler = loop.NewManualScheduler()
	}
	sess.logger = sess.logger.With().Str("component", "scene").Logger()
	return sess
}

// Settings returns the shared display settings
func (s *Session) Settings() *settings.Display {
	return s.settings
}

// Loaded reports whether records have been built
func (s *Session) Loaded() bool {
	return s.field != nil
}

// Len returns the number of particles
func (s *Session) Len() int {
	if s.field == nil {
		return 0
	}
	return s.field.Len()
}

// Load builds the camera, field, overlay and picker from records. The loop
// is not started. Empty records fail with tokens.ErrNoData and leave the
// session unloaded.
func (s *Session) Load(records []tokens.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("load: %w", tokens.ErrNoData)
	}
	if s.Loaded() {
		s.teardown()
	}

	field := particles.NewField(float64(s.settings.ParticleSizePx()))
	if err := field.Build(records); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	s.camera = camera.NewAt(geometry.Vector3{}, s.radius, s.theta, s.phi)
	if s.width > 0 && s.height > 0 {
		s.camera.SetAspect(s.width / s.height)
	}
	s.field = field
	s.overlay = labels.New(s.settings)
	s.overlay.Build(field.Len())
	s.picker = hover.NewPicker(field)

	s.logger.Info().Int("particles", field.Len()).Msg("visualization built")
	return nil
}

// Start creates the frame loop and schedules its first tick
func (s *Session) Start() error {
	if !s.Loaded() {
		return ErrNotLoaded
	}
	if s.loop != nil && s.loop.State() != loop.Stopped {
		return fmt.Errorf("start: %w", loop.ErrInvalidState)
	}

	l, err := loop.New(loop.Config{
		Camera:   s.camera,
		Field:    s.field,
		Overlay:  s.overlay,
		Picker:   s.picker,
		Settings: s.settings,
		Target:   s.target,
		Clock:    s.clock,
		Width:    s.width,
		Height:   s.height,
	}, s.scheduler, s.logger)
	if err != nil {
		return err
	}
	s.loop = l
	return l.Start()
}

// Stop stops the loop. It does nothing when not running.
func (s *Session) Stop() {
	if s.loop != nil {
		s.loop.Stop()
	}
}

// State returns the loop state
func (s *Session) State() loop.State {
	if s.loop == nil {
		return loop.Stopped
	}
	return s.loop.State()
}

// Pause stops the ambient rotation
func (s *Session) Pause() error {
	if s.loop == nil {
		return fmt.Errorf("pause: %w", loop.ErrInvalidState)
	}
	return s.loop.Pause()
}

// Resume restarts the ambient rotation
func (s *Session) Resume() error {
	if s.loop == nil {
		return fmt.Errorf("resume: %w", loop.ErrInvalidState)
	}
	return s.loop.Resume()
}

// TogglePause switches between running and paused
func (s *Session) TogglePause() error {
	if s.loop == nil {
		return fmt.Errorf("toggle pause: %w", loop.ErrInvalidState)
	}
	return s.loop.TogglePause()
}

// Resize records the viewport size. Before a build it does nothing.
func (s *Session) Resize(width, height float64) {
	if !s.Loaded() {
		return
	}
	s.width, s.height = width, height
	if s.loop != nil {
		s.loop.OnResize(width, height)
	}
}

// Size returns the viewport size
func (s *Session) Size() (width, height float64) {
	return s.width, s.height
}

// Close stops the loop and tears the visualization down
func (s *Session) Close() {
	s.teardown()
}

func (s *Session) teardown() {
	s.Stop()
	s.loop = nil
	if s.picker != nil {
		s.picker.Reset()
	}
	if s.overlay != nil {
		s.overlay.Release()
	}
	if s.field != nil {
		s.field.Teardown()
	}
	s.camera, s.field, s.overlay, s.picker = nil, nil, nil, nil
}

// Reload replaces the records: stop, teardown, build, start. The camera
// returns to its initial orbit.
func (s *Session) Reload(records []tokens.Record) error {
	s.teardown()
	if err := s.Load(records); err != nil {
		return err
	}
	s.logger.Info().Int("particles", s.field.Len()).Msg("visualization reloaded")
	return s.Start()
}

// Highlight pins particle index for two seconds
func (s *Session) Highlight(index int) error {
	if !s.Loaded() || !s.picker.Pin(index, s.clock.Now()) {
		return fmt.Errorf("highlight %d: %w", index, ErrNotFound)
	}
	return nil
}

// HighlightToken pins the first particle with the given token ID and
// returns its index
func (s *Session) HighlightToken(id int) (int, error) {
	if s.Loaded() {
		for i := 0; i < s.field.Len(); i++ {
			if s.field.Particle(i).ID == id {
				return i, s.Highlight(i)
			}
		}
	}
	return -1, fmt.Errorf("highlight token %d: %w", id, ErrNotFound)
}

// Snapshot returns the read-only rows of every particle
func (s *Session) Snapshot() []particles.Snapshot {
	if !s.Loaded() {
		return nil
	}
	return s.field.Snapshot()
}

// BeginDrag starts an orbit drag at the pointer position
func (s *Session) BeginDrag(x, y float64) {
	if s.camera != nil {
		s.camera.BeginDrag(x, y)
	}
}

// Drag orbits the camera
func (s *Session) Drag(x, y float64) {
	if s.camera != nil {
		s.camera.Drag(x, y)
	}
}

// EndDrag ends the orbit drag
func (s *Session) EndDrag() {
	if s.camera != nil {
		s.camera.EndDrag()
	}
}

// Zoom moves the camera along its radius
func (s *Session) Zoom(deltaY float64) {
	if s.camera != nil {
		s.camera.Zoom(deltaY)
	}
}

// ResetCamera returns the camera to its initial orbit
func (s *Session) ResetCamera() {
	if s.camera != nil {
		s.camera.Reset()
	}
}

// Dragging reports whether an orbit drag is active
func (s *Session) Dragging() bool {
	return s.camera != nil && s.camera.Dragging()
}

// PointerMoved records the pointer for hover picking
func (s *Session) PointerMoved(x, y float64) {
	if s.picker != nil {
		s.picker.PointerMoved(x, y)
	}
}

// PointerLeft clears the pointer
func (s *Session) PointerLeft() {
	if s.picker != nil {
		s.picker.PointerLeft()
	}
}

// Camera returns the camera state
func (s *Session) Camera() (camera.State, bool) {
	if s.camera == nil {
		return camera.State{}, false
	}
	return s.camera.State(), true
}

// Hovered returns the hovered index or hover.None
func (s *Session) Hovered() int {
	if s.picker == nil {
		return hover.None
	}
	return s.picker.Hovered()
}

// Pinned returns the pinned index or hover.None
func (s *Session) Pinned() int {
	if s.picker == nil {
		return hover.None
	}
	return s.picker.Pinned()
}

// Annotation returns the hover annotation
func (s *Session) Annotation() hover.Annotation {
	if s.picker == nil {
		return hover.Annotation{}
	}
	return s.picker.Annotation()
}

// Label returns the label state of particle i
func (s *Session) Label(i int) (labels.State, bool) {
	if s.overlay == nil {
		return labels.State{}, false
	}
	return s.overlay.State(i)
}

// PointSize returns the rendered size of particle i
func (s *Session) PointSize(i int) (float64, bool) {
	if s.field == nil || !s.field.Valid(i) {
		return 0, false
	}
	return s.field.PointSize(i), true
}

// Yaw returns the cumulative ambient rotation
func (s *Session) Yaw() float64 {
	if s.field == nil {
		return 0
	}
	return s.field.Yaw()
}

// Frame returns the last frame built by the loop
func (s *Session) Frame() render.Frame {
	if s.loop == nil {
		return render.Frame{}
	}
	return s.loop.LastFrame()
}
