// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 provides the 32/64-bit vector types used by the mesh and
// quadtree pipelines. It is a trimmed, domain-adapted descendant of an
// engine math package: only the operations the mesh pipeline actually
// exercises (cross products, linear interpolation, min/max accumulation)
// are kept.
package math32

import "math"

// Vector3 is a 3D vector/point with X, Y and Z components.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// NewVector3 creates and returns a pointer to a new Vector3 with
// the specified x, y and z components.
func NewVector3(x, y, z float32) *Vector3 {

	return &Vector3{X: x, Y: y, Z: z}
}

// Set sets this vector's X, Y and Z components.
// Returns the pointer to this updated vector.
func (v *Vector3) Set(x, y, z float32) *Vector3 {

	v.X = x
	v.Y = y
	v.Z = z
	return v
}

// Copy copies other vector to this one.
// Returns the pointer to this updated vector.
func (v *Vector3) Copy(other *Vector3) *Vector3 {

	*v = *other
	return v
}

// Add adds other vector to this one.
// Returns the pointer to this updated vector.
func (v *Vector3) Add(other *Vector3) *Vector3 {

	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
	return v
}

// Sub subtracts other vector from this one.
// Returns the pointer to this updated vector.
func (v *Vector3) Sub(other *Vector3) *Vector3 {

	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
	return v
}

// SubVectors sets this vector to a - b.
// Returns the pointer to this updated vector.
func (v *Vector3) SubVectors(a, b *Vector3) *Vector3 {

	v.X = a.X - b.X
	v.Y = a.Y - b.Y
	v.Z = a.Z - b.Z
	return v
}

// MultiplyScalar multiplies each component of this vector by the scalar s.
// Returns the pointer to this updated vector.
func (v *Vector3) MultiplyScalar(s float32) *Vector3 {

	v.X *= s
	v.Y *= s
	v.Z *= s
	return v
}

// Min sets this vector's components to the minimum of itself and other.
// Returns the pointer to this updated vector.
func (v *Vector3) Min(other *Vector3) *Vector3 {

	if other.X < v.X {
		v.X = other.X
	}
	if other.Y < v.Y {
		v.Y = other.Y
	}
	if other.Z < v.Z {
		v.Z = other.Z
	}
	return v
}

// Max sets this vector's components to the maximum of itself and other.
// Returns the pointer to this updated vector.
func (v *Vector3) Max(other *Vector3) *Vector3 {

	if other.X > v.X {
		v.X = other.X
	}
	if other.Y > v.Y {
		v.Y = other.Y
	}
	if other.Z > v.Z {
		v.Z = other.Z
	}
	return v
}

// Dot returns the dot product of this vector with other.
func (v *Vector3) Dot(other *Vector3) float32 {

	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross sets this vector to the cross product of itself with other.
// Returns the pointer to this updated vector.
func (v *Vector3) Cross(other *Vector3) *Vector3 {

	return v.CrossVectors(v, other)
}

// CrossVectors sets this vector to the cross product of a and b.
// Returns the pointer to this updated vector.
func (v *Vector3) CrossVectors(a, b *Vector3) *Vector3 {

	ax, ay, az := a.X, a.Y, a.Z
	bx, by, bz := b.X, b.Y, b.Z

	v.X = ay*bz - az*by
	v.Y = az*bx - ax*bz
	v.Z = ax*by - ay*bx
	return v
}

// LengthSq returns the square of the length of this vector.
func (v *Vector3) LengthSq() float32 {

	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the length of this vector.
func (v *Vector3) Length() float32 {

	return float32(math.Sqrt(float64(v.LengthSq())))
}

// Normalize normalizes this vector in place. A vector whose length is
// (near) zero is left unchanged.
// Returns the pointer to this updated vector.
func (v *Vector3) Normalize() *Vector3 {

	length := v.Length()
	if length < 1e-8 {
		return v
	}
	return v.MultiplyScalar(1 / length)
}

// Lerp sets this vector to be the linear interpolation between itself
// and other, where alpha is the percentage along the line - alpha 0
// returns this vector unchanged, alpha 1 returns other.
// Returns the pointer to this updated vector.
func (v *Vector3) Lerp(other *Vector3, alpha float32) *Vector3 {

	v.X += (other.X - v.X) * alpha
	v.Y += (other.Y - v.Y) * alpha
	v.Z += (other.Z - v.Z) * alpha
	return v
}

// Equals returns whether this vector is equal to other.
func (v *Vector3) Equals(other *Vector3) bool {

	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Clone returns a pointer to a new Vector3 which is a copy of this vector.
func (v *Vector3) Clone() *Vector3 {

	return NewVector3(v.X, v.Y, v.Z)
}

// Vector3d is a double-precision 3D vector with a conversion to the
// single-precision Vector3.
type Vector3d struct {
	X float64
	Y float64
	Z float64
}

// NewVector3d creates and returns a pointer to a new Vector3d.
func NewVector3d(x, y, z float64) *Vector3d {

	return &Vector3d{X: x, Y: y, Z: z}
}

// Sub subtracts other from this vector in place.
// Returns the pointer to this updated vector.
func (v *Vector3d) Sub(other *Vector3d) *Vector3d {

	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
	return v
}

// ToVector3 converts this double-precision vector to a single-precision
// Vector3, truncating each component as the tile decoder does once a
// position has been translated relative to the tile center.
func (v *Vector3d) ToVector3() *Vector3 {

	return NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
