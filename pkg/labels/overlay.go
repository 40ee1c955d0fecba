// Package labels derives the screen-space label of every particle once per
// frame. Nothing is carried from one frame to the next: each Update is a
// pure function of the camera view, the display settings, the particle
// positions and the pinned particle.
package labels

import (
	"math"

	"github.com/philipparndt/tokenviz/pkg/camera"
	"github.com/philipparndt/tokenviz/pkg/particles"
	"github.com/philipparndt/tokenviz/pkg/settings"
)

const (
	// FadeDistance is the camera distance at which the fade reaches its cap
	FadeDistance = 100.0
	// MaxFade caps how much distance alone can fade a label
	MaxFade = 0.8
	// MinOpacity is the opacity at or below which a label is hidden
	MinOpacity = 0.1

	PinnedSizeScale = 1.5

	ZNormal = 1000
	ZPinned = 2000

	// NoPin marks the absence of a pinned particle
	NoPin = -1
)

// State is the derived label of one particle
type State struct {
	Visible     bool
	Opacity     float64
	ScreenX     float64
	ScreenY     float64
	SizePx      int
	Bold        bool
	Highlighted bool
	Z           int
}

// Overlay holds one State per particle, addressed by particle index
type Overlay struct {
	settings *settings.Display
	states   []State
}

// New creates an overlay reading the shared display settings
func New(s *settings.Display) *Overlay {
	return &Overlay{settings: s}
}

// Build allocates n hidden labels
func (o *Overlay) Build(n int) {
	o.states = make([]State, n)
}

// Release drops every label
func (o *Overlay) Release() {
	o.states = nil
}

// Len returns the number of labels
func (o *Overlay) Len() int {
	return len(o.states)
}

// State returns label i
func (o *Overlay) State(i int) (State, bool) {
	if i < 0 || i >= len(o.states) {
		return State{}, false
	}
	return o.states[i], true
}

// States returns the labels in particle order. The slice is owned by the
// overlay and rewritten by the next Update.
func (o *Overlay) States() []State {
	return o.states
}

// DistanceFactor is the distance fade multiplier, never below 1 - MaxFade
func DistanceFactor(distance float64) float64 {
	return 1 - math.Min(distance/FadeDistance, MaxFade)
}

// Opacity combines the user opacity with the distance fade and reports
// whether the result clears the visibility floor
func Opacity(labelOpacity, distance float64) (float64, bool) {
	opacity := labelOpacity * DistanceFactor(distance)
	return opacity, opacity > MinOpacity
}

// Update recomputes every label. With an empty viewport all labels are
// hidden and camera.ErrCannotProject is returned.
func (o *Overlay) Update(view camera.View, field *particles.Field, width, height float64, pinned int) error {
	n := field.Len()
	if len(o.states) != n {
		o.states = make([]State, n)
	}

	s := o.settings
	baseSize := s.LabelSizePx()
	pinnedSize := int(math.Round(float64(baseSize) * PinnedSizeScale))
	density := s.LabelDensity()

	if !(width > 0) || !(height > 0) {
		for i := range o.states {
			o.states[i] = State{SizePx: baseSize, Z: ZNormal}
		}
		return camera.ErrCannotProject
	}

	for i := range o.states {
		isPinned := i == pinned
		st := State{SizePx: baseSize, Z: ZNormal}
		if isPinned {
			st.SizePx = pinnedSize
			st.Bold = true
			st.Highlighted = true
			st.Z = ZPinned
		}

		if !s.LabelsVisible() || (!isPinned && !density.Eligible(i, n)) {
			o.states[i] = st
			continue
		}

		pos := field.WorldPosition(i)
		proj, err := view.Project(pos, width, height)
		if err != nil || !proj.Visible {
			o.states[i] = st
			continue
		}
		st.ScreenX = proj.X
		st.ScreenY = proj.Y

		if isPinned {
			st.Opacity = 1
			st.Visible = true
		} else {
			st.Opacity, st.Visible = Opacity(s.LabelOpacity(), pos.Distance(view.Eye))
		}
		o.states[i] = st
	}

	return nil
}
