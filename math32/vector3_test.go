package math32

import "testing"

func TestVector3CrossNormalize(t *testing.T) {

	a := NewVector3(1, 0, 0)
	b := NewVector3(0, 1, 0)
	c := NewVector3(0, 0, 0).CrossVectors(a, b)
	if !c.Equals(NewVector3(0, 0, 1)) {
		t.Fatalf("cross product = %+v, want (0,0,1)", c)
	}

	c.MultiplyScalar(5)
	c.Normalize()
	if AlmostEqual(c.Z, 1, 1e-6) == false {
		t.Fatalf("normalized cross product = %+v, want unit Z", c)
	}
}

func TestVector3NormalizeNearZero(t *testing.T) {

	v := NewVector3(1e-10, 0, 0)
	v.Normalize()
	if v.X != 1e-10 {
		t.Fatalf("near-zero vector should be left unchanged, got %+v", v)
	}
}

func TestVector3Lerp(t *testing.T) {

	a := NewVector3(0, 0, 0)
	b := NewVector3(10, 0, 0)
	a.Lerp(b, 0.5)
	if a.X != 5 {
		t.Fatalf("lerp midpoint X = %v, want 5", a.X)
	}
}

func AlmostEqual(a, b, tolerance float32) bool {

	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}
