package geometry

import (
	"math"
	"testing"
)

func TestVector3Add(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Add(v2)

	expected := NewVector3(5, 7, 9)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Sub(t *testing.T) {
	v1 := NewVector3(5, 7, 9)
	v2 := NewVector3(1, 2, 3)
	result := v1.Sub(v2)

	expected := NewVector3(4, 5, 6)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Length(t *testing.T) {
	v := NewVector3(3, 4, 0)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector3Distance(t *testing.T) {
	v1 := NewVector3(0, 0, 0)
	v2 := NewVector3(3, 4, 0)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector3Normalize(t *testing.T) {
	v := NewVector3(3, 4, 0)
	normalized := v.Normalize()

	expectedLength := 1.0
	actualLength := normalized.Length()

	if math.Abs(actualLength-expectedLength) > 1e-10 {
		t.Errorf("Normalize failed: expected length %v, got %v", expectedLength, actualLength)
	}
}

func TestVector3Cross(t *testing.T) {
	v1 := NewVector3(1, 0, 0)
	v2 := NewVector3(0, 1, 0)
	result := v1.Cross(v2)

	expected := NewVector3(0, 0, 1)
	if result != expected {
		t.Errorf("Cross failed: expected %v, got %v", expected, result)
	}
}

func TestVector3Dot(t *testing.T) {
	v1 := NewVector3(1, 2, 3)
	v2 := NewVector3(4, 5, 6)
	result := v1.Dot(v2)

	expected := 32.0 // 1*4 + 2*5 + 3*6 = 32
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Dot failed: expected %v, got %v", expected, result)
	}
}

func TestFromSlice(t *testing.T) {
	v, ok := FromSlice([]float64{1, 2, 3})
	if !ok || v != NewVector3(1, 2, 3) {
		t.Errorf("FromSlice failed: got %v, %v", v, ok)
	}

	for _, bad := range [][]float64{nil, {1, 2}, {1, 2, 3, 4}} {
		if _, ok := FromSlice(bad); ok {
			t.Errorf("FromSlice(%v) should fail", bad)
		}
	}
}

func TestYawRotationPreservesLengthAndHeight(t *testing.T) {
	p := NewVector3(3, 2, -4)
	for _, angle := range []float64{0.1, math.Pi / 3, math.Pi, 5} {
		r := NewYawRotation(angle).Apply(p)
		if math.Abs(r.Length()-p.Length()) > 1e-9 {
			t.Errorf("angle %v: length changed from %v to %v", angle, p.Length(), r.Length())
		}
		if math.Abs(r.Y-p.Y) > 1e-9 {
			t.Errorf("angle %v: Y changed from %v to %v", angle, p.Y, r.Y)
		}
	}
}

func TestYawRotationFullTurn(t *testing.T) {
	p := NewVector3(1, 0.5, 2)
	r := NewYawRotation(2 * math.Pi).Apply(p)
	if r.Distance(p) > 1e-9 {
		t.Errorf("full turn should return to start: expected %v, got %v", p, r)
	}
}

func TestYawRotationQuarterTurnIsPerpendicular(t *testing.T) {
	p := NewVector3(1, 0, 0)
	r := NewYawRotation(math.Pi / 2).Apply(p)
	if math.Abs(r.Dot(p)) > 1e-9 || math.Abs(math.Abs(r.Z)-1) > 1e-9 {
		t.Errorf("quarter turn of X should land on the Z axis, got %v", r)
	}
}

func TestZeroYawIsIdentity(t *testing.T) {
	p := NewVector3(7, 8, 9)
	var zero YawRotation
	if zero.Apply(p) != p {
		t.Errorf("zero rotation changed %v", p)
	}
}
