package vecmath

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/geomath/internal/core/vecmath/host"
)

// Vector3From widens a host float vector to double precision.
func Vector3From(v host.Vector) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Vector3FromInt widens a host integer vector to double precision. Every int32
// is exactly representable as a float64.
func Vector3FromInt(v host.IntVector) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}
