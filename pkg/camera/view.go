package camera

import (
	"errors"
	"math"

	"github.com/philipparndt/tokenviz/pkg/geometry"
)

// ErrCannotProject is returned when the viewport has no area
var ErrCannotProject = errors.New("cannot project into an empty viewport")

var worldUp = geometry.NewVector3(0, 1, 0)

// View is the camera transform for one frame
type View struct {
	Eye     geometry.Vector3
	Target  geometry.Vector3
	Forward geometry.Vector3
	Right   geometry.Vector3
	Up      geometry.Vector3
	FOV     float64
	Aspect  float64
	Near    float64
	Far     float64
}

// Projection is a point mapped to the screen
type Projection struct {
	X, Y float64 // pixels, origin top left
	// Depth is the distance along the view direction
	Depth float64
	// Visible is false for points behind the near plane or beyond the far plane
	Visible bool
}

// View computes the look-at transform for the current state
func (c *Spherical) View() View {
	eye := c.CartesianPosition()
	forward := c.state.Target.Sub(eye).Normalize()
	right := forward.Cross(worldUp).Normalize()
	up := right.Cross(forward).Normalize()

	return View{
		Eye:     eye,
		Target:  c.state.Target,
		Forward: forward,
		Right:   right,
		Up:      up,
		FOV:     c.FOV,
		Aspect:  c.aspect,
		Near:    c.Near,
		Far:     c.Far,
	}
}

func (v View) aspectFor(width, height float64) float64 {
	if v.Aspect > 0 {
		return v.Aspect
	}
	return width / height
}

// Project maps a world point to pixel coordinates
func (v View) Project(p geometry.Vector3, width, height float64) (Projection, error) {
	if !(width > 0) || !(height > 0) {
		return Projection{}, ErrCannotProject
	}

	rel := p.Sub(v.Eye)
	x := rel.Dot(v.Right)
	y := rel.Dot(v.Up)
	z := rel.Dot(v.Forward)

	if z <= v.Near || z > v.Far {
		return Projection{Depth: z}, nil
	}

	fovScale := math.Tan(v.FOV / 2)
	ndcX := x / (z * fovScale * v.aspectFor(width, height))
	ndcY := y / (z * fovScale)

	return Projection{
		X:       (ndcX*0.5 + 0.5) * width,
		Y:       (-ndcY*0.5 + 0.5) * height,
		Depth:   z,
		Visible: true,
	}, nil
}

// RayNDC builds a ray from the eye through normalized device coordinates
// in [-1, 1], with +Y up
func (v View) RayNDC(ndcX, ndcY, aspect float64) geometry.Ray {
	fovScale := math.Tan(v.FOV / 2)
	dir := v.Forward.
		Add(v.Right.Mul(ndcX * fovScale * aspect)).
		Add(v.Up.Mul(ndcY * fovScale))
	return geometry.NewRay(v.Eye, dir)
}

// Ray builds a ray from the eye through a pixel
func (v View) Ray(screenX, screenY, width, height float64) (geometry.Ray, error) {
	if !(width > 0) || !(height > 0) {
		return geometry.Ray{}, ErrCannotProject
	}
	ndcX := 2.0*screenX/width - 1.0
	ndcY := 1.0 - 2.0*screenY/height
	return v.RayNDC(ndcX, ndcY, v.aspectFor(width, height)), nil
}
