package geometry

import (
	"math"
	"testing"
)

func TestRayClosest(t *testing.T) {
	ray := NewRay(NewVector3(0, 0, 10), NewVector3(0, 0, -5))

	tests := []struct {
		name     string
		point    Vector3
		wantT    float64
		wantDist float64
	}{
		{"on ray", NewVector3(0, 0, 0), 10, 0},
		{"off axis", NewVector3(3, 4, 2), 8, 5},
		{"behind origin", NewVector3(0, 3, 14), 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotT, gotDist := ray.Closest(tt.point)
			if math.Abs(gotT-tt.wantT) > 1e-10 {
				t.Errorf("t: expected %v, got %v", tt.wantT, gotT)
			}
			if math.Abs(gotDist-tt.wantDist) > 1e-10 {
				t.Errorf("distance: expected %v, got %v", tt.wantDist, gotDist)
			}
		})
	}
}

func TestNewRayNormalizesDirection(t *testing.T) {
	ray := NewRay(Vector3{}, NewVector3(0, 3, 4))
	if math.Abs(ray.Direction.Length()-1) > 1e-10 {
		t.Errorf("direction not normalized: %v", ray.Direction)
	}
}

func TestBoundingBox(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.Empty() {
		t.Fatal("new bounding box should be empty")
	}
	if bbox.Size() != (Vector3{}) {
		t.Errorf("empty box size should be zero, got %v", bbox.Size())
	}

	bbox.Extend(NewVector3(-1, 0, 2))
	bbox.Extend(NewVector3(3, 4, -2))

	if bbox.Size() != NewVector3(4, 4, 4) {
		t.Errorf("Size failed: got %v", bbox.Size())
	}
	if bbox.Center() != NewVector3(1, 2, 0) {
		t.Errorf("Center failed: got %v", bbox.Center())
	}
	if math.Abs(bbox.Diagonal()-math.Sqrt(48)) > 1e-10 {
		t.Errorf("Diagonal failed: got %v", bbox.Diagonal())
	}
}
