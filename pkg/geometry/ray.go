package geometry

// Ray is a half line starting at Origin. Direction is kept normalized.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Closest returns the parameter of the point on the ray closest to p and the
// distance from p to that point. Points behind the origin clamp to t = 0.
func (r Ray) Closest(p Vector3) (t, distance float64) {
	t = p.Sub(r.Origin).Dot(r.Direction)
	if t < 0 {
		t = 0
	}
	return t, p.Distance(r.At(t))
}
