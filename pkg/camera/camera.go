// Package camera implements the orbit camera used to look at the token cloud.
//
// The camera is parameterized by spherical coordinates (radius, azimuth theta,
// polar phi) around a fixed target. Pointer drags rotate it, the wheel zooms it,
// and View returns an immutable snapshot used for projection and picking
// during a single frame.
package camera

import (
	"math"

	"github.com/philipparndt/tokenviz/pkg/geometry"
)

const (
	MinRadius = 1.0
	MaxRadius = 500.0
	MinPhi    = 0.1
	MaxPhi    = math.Pi - 0.1

	// DefaultRadius, DefaultTheta and DefaultPhi place the camera on +Z
	// looking at the origin
	DefaultRadius = 100.0
	DefaultTheta  = 0.0
	DefaultPhi    = math.Pi / 2

	dragSensitivity = 0.005
	zoomSensitivity = 0.05
)

// State is the camera's spherical parameterization
type State struct {
	Target geometry.Vector3
	Radius float64
	Theta  float64
	Phi    float64
}

// Spherical is an orbit camera around a fixed target
type Spherical struct {
	state   State
	initial State

	RotateSpeed float64
	ZoomSpeed   float64
	FOV         float64 // vertical field of view in radians
	Near        float64
	Far         float64
	aspect      float64

	dragging     bool
	lastX, lastY float64
}

// New creates a camera at the default position looking at the origin
func New() *Spherical {
	return NewAt(geometry.Vector3{}, DefaultRadius, DefaultTheta, DefaultPhi)
}

// NewAt creates a camera with the given initial spherical position. Radius
// and phi are clamped; the clamped values are what Reset restores.
func NewAt(target geometry.Vector3, radius, theta, phi float64) *Spherical {
	initial := State{
		Target: target,
		Radius: clampRadius(radius),
		Theta:  theta,
		Phi:    clampPhi(phi),
	}
	return &Spherical{
		state:       initial,
		initial:     initial,
		RotateSpeed: 1.0,
		ZoomSpeed:   1.0,
		FOV:         75 * math.Pi / 180,
		Near:        0.1,
		Far:         1000,
		aspect:      1.0,
	}
}

// State returns a copy of the current spherical parameters
func (c *Spherical) State() State {
	return c.state
}

// Initial returns the parameters recorded at construction
func (c *Spherical) Initial() State {
	return c.initial
}

// Dragging reports whether a drag is in progress
func (c *Spherical) Dragging() bool {
	return c.dragging
}

// BeginDrag records the drag anchor
func (c *Spherical) BeginDrag(x, y float64) {
	c.dragging = true
	c.lastX = x
	c.lastY = y
}

// Drag rotates the camera by the pointer movement since the last recorded
// point and moves the anchor. Without an active drag it does nothing.
func (c *Spherical) Drag(x, y float64) {
	if !c.dragging {
		return
	}

	dx := x - c.lastX
	dy := y - c.lastY
	c.lastX = x
	c.lastY = y

	if dx == 0 && dy == 0 {
		return
	}

	k := c.RotateSpeed * dragSensitivity
	c.state.Theta += dx * k
	c.state.Phi = clampPhi(c.state.Phi - dy*k)
}

// EndDrag clears the drag state
func (c *Spherical) EndDrag() {
	c.dragging = false
}

// Zoom moves the camera along its radius; positive deltas move away
func (c *Spherical) Zoom(deltaY float64) {
	c.state.Radius = clampRadius(c.state.Radius + deltaY*c.ZoomSpeed*zoomSensitivity)
}

// Reset restores the initial radius, theta and phi and cancels any drag
func (c *Spherical) Reset() {
	c.state = c.initial
	c.dragging = false
}

// SetAspect sets the viewport aspect ratio (width / height). Non-positive
// values are ignored.
func (c *Spherical) SetAspect(aspect float64) {
	if aspect > 0 && !math.IsInf(aspect, 0) {
		c.aspect = aspect
	}
}

// Aspect returns the viewport aspect ratio
func (c *Spherical) Aspect() float64 {
	return c.aspect
}

// CartesianPosition converts the spherical state to a world position
func (c *Spherical) CartesianPosition() geometry.Vector3 {
	return CartesianPosition(c.state)
}

// CartesianPosition maps a spherical state to the world position of the eye
func CartesianPosition(s State) geometry.Vector3 {
	sinPhiRadius := math.Sin(s.Phi) * s.Radius
	return s.Target.Add(geometry.NewVector3(
		sinPhiRadius*math.Sin(s.Theta),
		math.Cos(s.Phi)*s.Radius,
		sinPhiRadius*math.Cos(s.Theta),
	))
}

func clampRadius(r float64) float64 {
	if math.IsNaN(r) {
		return DefaultRadius
	}
	return math.Max(MinRadius, math.Min(MaxRadius, r))
}

func clampPhi(phi float64) float64 {
	if math.IsNaN(phi) {
		return DefaultPhi
	}
	return math.Max(MinPhi, math.Min(MaxPhi, phi))
}
