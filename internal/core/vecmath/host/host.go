// Package host holds the engine-native value types that the vecmath
// converters accept and produce.
//
// Float vectors and matrices are the engine's single-precision mgl32 types.
// Matrices are column-major: entry (row r, column c) lives at index c*4+r, and
// column 3 carries the translation plus the homogeneous weight.
package host

import "github.com/go-gl/mathgl/mgl32"

// Vector is the engine's float vector (x, y, z).
type Vector = mgl32.Vec3

// Matrix is the engine's 4x4 transform.
type Matrix = mgl32.Mat4

// IntVector is the engine's integer vector, used for cell and origin offsets.
type IntVector struct {
	X int32 `json:"x" yaml:"x"`
	Y int32 `json:"y" yaml:"y"`
	Z int32 `json:"z" yaml:"z"`
}

// NewIntVector creates an integer vector from its components.
func NewIntVector(x, y, z int32) IntVector {
	return IntVector{X: x, Y: y, Z: z}
}

// Identity returns the engine identity matrix.
func Identity() Matrix { return mgl32.Ident4() }
