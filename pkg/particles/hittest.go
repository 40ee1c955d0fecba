package particles

import "github.com/philipparndt/tokenviz/pkg/geometry"

// tieEpsilon treats distances this close as equal so ties resolve by index
const tieEpsilon = 1e-9

// HitTest returns the particle closest to the ray among those within
// threshold of it and in front of the ray origin. Equal ray distances are
// decided by distance to the origin, then by the smaller index.
func (f *Field) HitTest(ray geometry.Ray, threshold float64) (int, bool) {
	best := -1
	var bestDist, bestAlong float64

	for i := range f.particles {
		p := f.WorldPosition(i)
		if p.Sub(ray.Origin).Dot(ray.Direction) < 0 {
			continue
		}

		along, dist := ray.Closest(p)
		if dist > threshold {
			continue
		}

		if best < 0 || closer(dist, along, bestDist, bestAlong) {
			best, bestDist, bestAlong = i, dist, along
		}
	}

	return best, best >= 0
}

func closer(dist, along, bestDist, bestAlong float64) bool {
	if dist < bestDist-tieEpsilon {
		return true
	}
	if dist > bestDist+tieEpsilon {
		return false
	}
	return along < bestAlong-tieEpsilon
}
