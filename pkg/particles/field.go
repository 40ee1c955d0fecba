// Package particles owns the per-token point buffers of a visualization:
// scaled positions, colors, point sizes and the ambient yaw transform.
package particles

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/philipparndt/tokenviz/pkg/geometry"
	"github.com/philipparndt/tokenviz/pkg/tokens"
)

const (
	// DisplayScale spreads the reduced vectors out so points separate visibly
	DisplayScale = 10.0

	colorSaturation = 0.8
	colorLightness  = 0.5
)

// Particle is one token occurrence in the field
type Particle struct {
	ID       int
	Text     string
	Vector   geometry.Vector3 // as loaded
	Position geometry.Vector3 // scaled, before yaw
	Hue      float64          // [0,1)
	Color    color.RGBA
}

// Snapshot is the read-only row exposed to tabular views
type Snapshot struct {
	Index    int
	ID       int
	Text     string
	Position geometry.Vector3 // unscaled vector units
}

// Field holds all particles of one visualization session
type Field struct {
	particles []Particle
	yaw       geometry.YawRotation
	baseSize  float64
	emphasis  map[int]map[string]float64
}

// NewField creates an empty field with the given base point size
func NewField(pointSize float64) *Field {
	return &Field{
		baseSize: math.Max(1, pointSize),
		emphasis: make(map[int]map[string]float64),
	}
}

// Hue maps a token ID to a hue in [0,1). Equal IDs modulo 360 share a hue.
func Hue(id int) float64 {
	return float64(((id%360)+360)%360) / 360
}

// HueColor returns the particle color for a token ID
func HueColor(id int) color.RGBA {
	return hslColor(Hue(id), colorSaturation, colorLightness)
}

// HueColorAlpha returns the hue of a token ID at the given saturation,
// lightness and alpha
func HueColorAlpha(id int, s, l float64, alpha uint8) color.NRGBA {
	c := hslColor(Hue(id), s, l)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

func hslColor(hue, s, l float64) color.RGBA {
	r, g, b := colorful.Hsl(hue*360, s, l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Build replaces all particle data with the given records. The yaw and all
// emphasis are reset; the base point size is kept.
func (f *Field) Build(records []tokens.Record) error {
	if len(records) == 0 {
		return tokens.ErrNoData
	}

	particles := make([]Particle, len(records))
	for i, r := range records {
		particles[i] = Particle{
			ID:       r.ID,
			Text:     r.Text,
			Vector:   r.Vector,
			Position: r.Vector.Mul(DisplayScale),
			Hue:      Hue(r.ID),
			Color:    HueColor(r.ID),
		}
	}

	f.particles = particles
	f.yaw = geometry.YawRotation{}
	f.emphasis = make(map[int]map[string]float64)
	return nil
}

// Teardown drops all particle data
func (f *Field) Teardown() {
	f.particles = nil
	f.yaw = geometry.YawRotation{}
	f.emphasis = make(map[int]map[string]float64)
}

// Len returns the number of particles
func (f *Field) Len() int {
	return len(f.particles)
}

// Valid reports whether i addresses an existing particle
func (f *Field) Valid(i int) bool {
	return i >= 0 && i < len(f.particles)
}

// Particle returns particle i
func (f *Field) Particle(i int) Particle {
	return f.particles[i]
}

// Color returns particle i's color
func (f *Field) Color(i int) color.RGBA {
	return f.particles[i].Color
}

// RotateY adds to the cumulative yaw applied at render time
func (f *Field) RotateY(radians float64) {
	if radians == 0 || math.IsNaN(radians) {
		return
	}
	angle := math.Mod(f.yaw.Angle()+radians, 2*math.Pi)
	f.yaw = geometry.NewYawRotation(angle)
}

// Yaw returns the cumulative yaw in radians
func (f *Field) Yaw() float64 {
	return f.yaw.Angle()
}

// WorldPosition returns particle i's position with the yaw applied
func (f *Field) WorldPosition(i int) geometry.Vector3 {
	return f.yaw.Apply(f.particles[i].Position)
}

// SetPointSize sets the base rendered size of every point
func (f *Field) SetPointSize(px float64) {
	if px >= 1 {
		f.baseSize = px
	}
}

// BasePointSize returns the size set by SetPointSize
func (f *Field) BasePointSize() float64 {
	return f.baseSize
}

// SetEmphasis scales particle i's point size under the given source key.
// Each source holds at most one scale per particle.
func (f *Field) SetEmphasis(i int, source string, scale float64) {
	if !f.Valid(i) {
		return
	}
	m, ok := f.emphasis[i]
	if !ok {
		m = make(map[string]float64)
		f.emphasis[i] = m
	}
	m[source] = scale
}

// ClearEmphasis removes a source's scale from particle i. Clearing twice is
// harmless.
func (f *Field) ClearEmphasis(i int, source string) {
	m, ok := f.emphasis[i]
	if !ok {
		return
	}
	delete(m, source)
	if len(m) == 0 {
		delete(f.emphasis, i)
	}
}

// Emphasized reports whether any source scales particle i
func (f *Field) Emphasized(i int) bool {
	return len(f.emphasis[i]) > 0
}

// PointSize returns particle i's rendered size: the base size times the
// largest active emphasis, or exactly the base size without emphasis
func (f *Field) PointSize(i int) float64 {
	scale := 1.0
	for _, s := range f.emphasis[i] {
		scale = math.Max(scale, s)
	}
	return f.baseSize * scale
}

// Snapshot returns the per-particle rows in index order
func (f *Field) Snapshot() []Snapshot {
	out := make([]Snapshot, len(f.particles))
	for i, p := range f.particles {
		out[i] = Snapshot{
			Index:    i,
			ID:       p.ID,
			Text:     p.Text,
			Position: p.Vector,
		}
	}
	return out
}
