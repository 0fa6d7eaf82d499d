package vecmath

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/geomath/internal/core/vecmath/host"
)

// homogeneousPoint is the w component given to 4D results built from two 3D
// operands.
const homogeneousPoint = 1.0

// Add4D returns f + i as a point with w = 1.
func Add4D(f host.Vector, i host.IntVector) mgl64.Vec4 {
	return Add3D(f, i).Vec4(homogeneousPoint)
}

// Add4DIntFloat returns i + f as a point with w = 1.
func Add4DIntFloat(i host.IntVector, f host.Vector) mgl64.Vec4 {
	return Add3DIntFloat(i, f).Vec4(homogeneousPoint)
}

// Add4DDouble adds i to the x, y and z components of d. The w component of d is
// kept as is.
func Add4DDouble(d mgl64.Vec4, i host.IntVector) mgl64.Vec4 {
	return Add3DDouble(d.Vec3(), i).Vec4(d[3])
}

// Add3D returns f + i in double precision.
func Add3D(f host.Vector, i host.IntVector) mgl64.Vec3 {
	return Vector3From(f).Add(Vector3FromInt(i))
}

// Add3DIntFloat returns i + f in double precision.
func Add3DIntFloat(i host.IntVector, f host.Vector) mgl64.Vec3 {
	return Vector3FromInt(i).Add(Vector3From(f))
}

// Add3DDouble returns d + i.
func Add3DDouble(d mgl64.Vec3, i host.IntVector) mgl64.Vec3 {
	return d.Add(Vector3FromInt(i))
}

// Subtract4D returns f - i as a point with w = 1.
func Subtract4D(f host.Vector, i host.IntVector) mgl64.Vec4 {
	return Subtract3D(f, i).Vec4(homogeneousPoint)
}

// Subtract4DIntFloat returns i - f as a point with w = 1. Note the operand
// order: this is the negation of Subtract4D(f, i) in x, y and z.
func Subtract4DIntFloat(i host.IntVector, f host.Vector) mgl64.Vec4 {
	return Subtract3DIntFloat(i, f).Vec4(homogeneousPoint)
}

// Subtract3D returns f - i in double precision.
func Subtract3D(f host.Vector, i host.IntVector) mgl64.Vec3 {
	return Vector3From(f).Sub(Vector3FromInt(i))
}

// Subtract3DIntFloat returns i - f in double precision.
func Subtract3DIntFloat(i host.IntVector, f host.Vector) mgl64.Vec3 {
	return Vector3FromInt(i).Sub(Vector3From(f))
}
