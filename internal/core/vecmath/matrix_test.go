package vecmath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/geomath/internal/core/vecmath/host"
)

// sampleHost has a distinct float32-exact value in every slot.
func sampleHost() host.Matrix {
	var m host.Matrix
	for i := range m {
		m[i] = float32(i) + 0.5
	}
	return m
}

func TestMatrix4FromCopiesColumns(t *testing.T) {
	m := sampleHost()
	got := Matrix4From(m)
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			require.Equal(t, float64(m.At(r, c)), got.At(r, c), "row %d col %d", r, c)
		}
	}
}

func TestMatrix4FromTranslationKeepsWeight(t *testing.T) {
	m := sampleHost()
	got := Matrix4FromTranslation(m, mgl64.Vec3{10, 20, 30})

	require.Equal(t, mgl64.Vec4{10, 20, 30, float64(m[15])}, got.Col(3))
	require.NotEqual(t, 1.0, got.At(3, 3), "weight must not be forced to 1")
	base := Matrix4From(m)
	for c := 0; c < 3; c++ {
		require.Equal(t, base.Col(c), got.Col(c))
	}
}

func TestMatrix4FromXYZWOnlyChangesTranslation(t *testing.T) {
	m := sampleHost()
	base := Matrix4From(m)
	got := Matrix4FromXYZW(m, -1, -2, -3, 7)

	for c := 0; c < 3; c++ {
		assert.Equal(t, base.Col(c), got.Col(c), "column %d", c)
	}
	assert.Equal(t, mgl64.Vec4{-1, -2, -3, 7}, got.Col(3))
}

func TestMatrix4FromTranslation4(t *testing.T) {
	m := sampleHost()
	require.Equal(t,
		Matrix4FromXYZW(m, 4, 5, 6, 0.25),
		Matrix4FromTranslation4(m, mgl64.Vec4{4, 5, 6, 0.25}),
	)
}

func TestTranslationMatrix4(t *testing.T) {
	got := TranslationMatrix4(1, 2, 3, 1)
	require.Equal(t, Matrix4FromXYZW(host.Identity(), 1, 2, 3, 1), got)
	require.Equal(t, mgl64.Translate3D(1, 2, 3), got)
}

func TestHostMatrixFrom4RoundTrip(t *testing.T) {
	var m mgl64.Mat4
	for i := range m {
		m[i] = float64(i)*0.25 - 2
	}
	require.Equal(t, m, Matrix4From(HostMatrixFrom4(m)))

	hm := sampleHost()
	require.Equal(t, hm, HostMatrixFrom4(Matrix4From(hm)))
}

func TestHostMatrixFrom4Narrows(t *testing.T) {
	m := mgl64.Ident4()
	m.Set(0, 3, 6378137.123456789)
	got := HostMatrixFrom4(m)
	require.Equal(t, float32(6378137.123456789), got.At(0, 3))
}

func TestHostMatrixFrom3(t *testing.T) {
	m := mgl64.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	got := HostMatrixFrom3(m)

	want := mgl32.Mat4{
		1, 2, 3, 0,
		4, 5, 6, 0,
		7, 8, 9, 0,
		0, 0, 0, 1,
	}
	require.Equal(t, want, got)
}

func TestHostMatrixFromColumnsMatchesMat3(t *testing.T) {
	c0 := mgl64.Vec3{0.5, 0, -1}
	c1 := mgl64.Vec3{2, 3, 4}
	c2 := mgl64.Vec3{-8, 16, 32}

	got := HostMatrixFromColumns(c0, c1, c2)
	require.Equal(t, HostMatrixFrom3(mgl64.Mat3FromCols(c0, c1, c2)), got)
	require.Equal(t, mgl32.Vec4{0, 0, 0, 1}, got.Col(3))
	require.Equal(t, mgl32.Vec4{0.5, 0, -1, 0}, got.Col(0))
}
