package vecmath

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/geomath/internal/core/vecmath/host"
)

const translationColumn = 3

// Matrix4From copies all sixteen entries of m into a double-precision matrix,
// keeping column order.
func Matrix4From(m host.Matrix) mgl64.Mat4 {
	var out mgl64.Mat4
	for i, e := range m {
		out[i] = float64(e)
	}
	return out
}

// Matrix4FromTranslation is Matrix4From with the x, y and z entries of the
// translation column replaced by t. The homogeneous weight is taken from m.
func Matrix4FromTranslation(m host.Matrix, t mgl64.Vec3) mgl64.Mat4 {
	w := float64(m.At(translationColumn, translationColumn))
	return Matrix4FromXYZW(m, t[0], t[1], t[2], w)
}

// Matrix4FromXYZW is Matrix4From with the whole translation column replaced by
// (tx, ty, tz, tw).
func Matrix4FromXYZW(m host.Matrix, tx, ty, tz, tw float64) mgl64.Mat4 {
	out := Matrix4From(m)
	out.SetCol(translationColumn, mgl64.Vec4{tx, ty, tz, tw})
	return out
}

// Matrix4FromTranslation4 is Matrix4FromXYZW taking the column as a vector.
func Matrix4FromTranslation4(m host.Matrix, t mgl64.Vec4) mgl64.Mat4 {
	return Matrix4FromXYZW(m, t[0], t[1], t[2], t[3])
}

// TranslationMatrix4 returns the identity with its translation column set to
// (tx, ty, tz, tw).
func TranslationMatrix4(tx, ty, tz, tw float64) mgl64.Mat4 {
	out := mgl64.Ident4()
	out.SetCol(translationColumn, mgl64.Vec4{tx, ty, tz, tw})
	return out
}

// HostMatrixFrom3 embeds m as the upper-left block of an identity host matrix.
func HostMatrixFrom3(m mgl64.Mat3) host.Matrix {
	return hostMatrixWithBlock(m.Col(0), m.Col(1), m.Col(2))
}

// HostMatrixFrom4 narrows every entry of m to the host precision.
func HostMatrixFrom4(m mgl64.Mat4) host.Matrix {
	var out host.Matrix
	for i, e := range m {
		out[i] = float32(e)
	}
	return out
}

// HostMatrixFromColumns builds an identity host matrix whose upper-left block
// columns are c0, c1 and c2.
func HostMatrixFromColumns(c0, c1, c2 mgl64.Vec3) host.Matrix {
	return hostMatrixWithBlock(c0, c1, c2)
}

func hostMatrixWithBlock(c0, c1, c2 mgl64.Vec3) host.Matrix {
	out := mgl32.Ident4()
	for c, col := range [3]mgl64.Vec3{c0, c1, c2} {
		for r := 0; r < 3; r++ {
			out.Set(r, c, float32(col[r]))
		}
	}
	return out
}
