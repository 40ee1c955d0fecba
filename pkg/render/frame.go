// Package render turns the per-tick state of a session into a Frame and
// draws frames onto render targets.
package render

import (
	"cmp"
	"image/color"
	"math"
	"slices"
	"strconv"

	"github.com/philipparndt/tokenviz/pkg/camera"
	"github.com/philipparndt/tokenviz/pkg/hover"
	"github.com/philipparndt/tokenviz/pkg/labels"
	"github.com/philipparndt/tokenviz/pkg/particles"
)

const (
	minPointPx = 1.0
	maxPointPx = 64.0

	labelSaturation = 0.8
	labelLightness  = 0.5
	labelAlpha      = 0.7
)

var (
	// Background is the clear color of every frame
	Background = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}

	pinnedLabelBackground = color.NRGBA{R: 255, G: 215, A: 204}
)

// Point is one particle as it lands on screen
type Point struct {
	Index  int
	X, Y   float64
	Depth  float64
	SizePx float64
	Color  color.RGBA
}

// Label is one visible label as it lands on screen, centered on X, Y
type Label struct {
	Index      int
	Text       string
	X, Y       float64
	Opacity    float64
	SizePx     int
	Bold       bool
	Background color.NRGBA
	Z          int
}

// Frame is everything a target needs to draw one tick
type Frame struct {
	Width, Height int
	// Points are ordered back to front
	Points []Point
	// Labels are ordered by ascending Z
	Labels     []Label
	Annotation hover.Annotation
}

// Target draws frames
type Target interface {
	Resize(width, height int)
	Render(frame Frame) error
}

// PointSizePx applies perspective attenuation to a point size
func PointSizePx(size, depth, height float64) float64 {
	if depth <= 0 {
		return minPointPx
	}
	px := size * height / (2 * depth)
	return math.Max(minPointPx, math.Min(maxPointPx, px))
}

// LabelBackground returns the label fill for a token ID
func LabelBackground(id int, highlighted bool) color.NRGBA {
	if highlighted {
		return pinnedLabelBackground
	}
	return particles.HueColorAlpha(id, labelSaturation, labelLightness, uint8(math.Round(labelAlpha*255)))
}

// BuildFrame projects the field and collects the visible labels
func BuildFrame(view camera.View, field *particles.Field, overlay *labels.Overlay, annotation hover.Annotation, width, height float64) (Frame, error) {
	if !(width > 0) || !(height > 0) {
		return Frame{}, camera.ErrCannotProject
	}

	frame := Frame{
		Width:      int(math.Round(width)),
		Height:     int(math.Round(height)),
		Annotation: annotation,
	}

	for i := 0; i < field.Len(); i++ {
		proj, err := view.Project(field.WorldPosition(i), width, height)
		if err != nil {
			return Frame{}, err
		}
		if !proj.Visible {
			continue
		}
		frame.Points = append(frame.Points, Point{
			Index:  i,
			X:      proj.X,
			Y:      proj.Y,
			Depth:  proj.Depth,
			SizePx: PointSizePx(field.PointSize(i), proj.Depth, height),
			Color:  field.Color(i),
		})
	}
	slices.SortStableFunc(frame.Points, func(a, b Point) int {
		return cmp.Compare(b.Depth, a.Depth)
	})

	states := overlay.States()
	for i := 0; i < len(states) && i < field.Len(); i++ {
		st := states[i]
		if !st.Visible {
			continue
		}
		id := field.Particle(i).ID
		frame.Labels = append(frame.Labels, Label{
			Index:      i,
			Text:       strconv.Itoa(id),
			X:          st.ScreenX,
			Y:          st.ScreenY,
			Opacity:    st.Opacity,
			SizePx:     st.SizePx,
			Bold:       st.Bold,
			Background: LabelBackground(id, st.Highlighted),
			Z:          st.Z,
		})
	}
	slices.SortStableFunc(frame.Labels, func(a, b Label) int {
		return cmp.Compare(a.Z, b.Z)
	})

	return frame, nil
}
