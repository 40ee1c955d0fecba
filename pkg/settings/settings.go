// Package settings holds the display controls shared by every component of a
// visualization. A single *Display is created by the frontend and passed to
// each constructor; controls write to it and the loop reads it every tick.
package settings

import "math"

const (
	MinRotationSpeed = 1
	MaxRotationSpeed = 100

	// rotationDivisor converts the 1..100 speed control into radians per tick
	rotationDivisor = 5000.0
)

// Display is the set of user-adjustable display parameters
type Display struct {
	rotationSpeed  int
	particleSizePx int
	labelsVisible  bool
	labelSizePx    int
	labelOpacity   float64
	labelDensity   Density
	searchFilter   string
}

// Defaults returns the settings the viewer opens with
func Defaults() Display {
	return Display{
		rotationSpeed:  10,
		particleSizePx: 5,
		labelsVisible:  true,
		labelSizePx:    12,
		labelOpacity:   0.8,
		labelDensity:   DensityHigh,
	}
}

// New returns a pointer to a fresh default settings context
func New() *Display {
	d := Defaults()
	return &d
}

// RotationSpeed returns the ambient rotation speed, 1..100
func (d *Display) RotationSpeed() int { return d.rotationSpeed }

// ParticleSizePx returns the base point size in pixels
func (d *Display) ParticleSizePx() int { return d.particleSizePx }

// LabelsVisible reports whether labels are shown at all
func (d *Display) LabelsVisible() bool { return d.labelsVisible }

// LabelSizePx returns the label font size in pixels
func (d *Display) LabelSizePx() int { return d.labelSizePx }

// LabelOpacity returns the label opacity fraction in [0,1]
func (d *Display) LabelOpacity() float64 { return d.labelOpacity }

// LabelDensity returns the label density
func (d *Display) LabelDensity() Density { return d.labelDensity }

// SearchFilter returns the table search term
func (d *Display) SearchFilter() string { return d.searchFilter }

// RotationPerTick returns the ambient yaw increment in radians
func (d *Display) RotationPerTick() float64 {
	return float64(d.rotationSpeed) / rotationDivisor
}

// SetRotationSpeed sets the ambient rotation speed, clamped to 1..100
func (d *Display) SetRotationSpeed(speed int) {
	d.rotationSpeed = max(MinRotationSpeed, min(MaxRotationSpeed, speed))
}

// SetParticleSize sets the base point size in pixels (at least 1)
func (d *Display) SetParticleSize(px int) {
	d.particleSizePx = max(1, px)
}

// SetLabelsVisible toggles all labels
func (d *Display) SetLabelsVisible(visible bool) {
	d.labelsVisible = visible
}

// SetLabelSize sets the label font size in pixels (at least 1)
func (d *Display) SetLabelSize(px int) {
	d.labelSizePx = max(1, px)
}

// SetLabelOpacity sets the label opacity fraction, clamped to [0,1]
func (d *Display) SetLabelOpacity(opacity float64) {
	if math.IsNaN(opacity) {
		return
	}
	d.labelOpacity = math.Max(0, math.Min(1, opacity))
}

// SetLabelOpacityPercent accepts the 0..100 slider value
func (d *Display) SetLabelOpacityPercent(percent int) {
	d.SetLabelOpacity(float64(percent) / 100)
}

// SetLabelDensity sets the label density
func (d *Display) SetLabelDensity(density Density) {
	if density < DensityNone || density > DensityAll {
		density = DensityHigh
	}
	d.labelDensity = density
}

// SetSearchFilter stores the table search term
func (d *Display) SetSearchFilter(term string) {
	d.searchFilter = term
}
