package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/geomath/internal/core/vecmath"
	"github.com/zeusync/geomath/internal/core/vecmath/host"
)

// Operation decodes its arguments and runs one converter function.
type Operation func(args json.RawMessage) (any, error)

// Argument shapes. Vectors and matrices travel as JSON arrays in column-major
// order; integer vectors as {"x","y","z"} objects.
type (
	hostMatrixArgs struct {
		Matrix host.Matrix `json:"matrix"`
	}
	hostMatrixTranslationArgs struct {
		Matrix      host.Matrix `json:"matrix"`
		Translation mgl64.Vec3  `json:"translation"`
	}
	hostMatrixTranslation4Args struct {
		Matrix      host.Matrix `json:"matrix"`
		Translation mgl64.Vec4  `json:"translation"`
	}
	hostMatrixXYZWArgs struct {
		Matrix host.Matrix `json:"matrix"`
		xyzwArgs
	}
	xyzwArgs struct {
		TX float64 `json:"tx"`
		TY float64 `json:"ty"`
		TZ float64 `json:"tz"`
		TW float64 `json:"tw"`
	}
	vectorArgs struct {
		Vector host.Vector `json:"vector"`
	}
	intVectorArgs struct {
		Vector host.IntVector `json:"vector"`
	}
	matrix3Args struct {
		Matrix mgl64.Mat3 `json:"matrix"`
	}
	matrix4Args struct {
		Matrix mgl64.Mat4 `json:"matrix"`
	}
	columnsArgs struct {
		Column0 mgl64.Vec3 `json:"column0"`
		Column1 mgl64.Vec3 `json:"column1"`
		Column2 mgl64.Vec3 `json:"column2"`
	}
	floatIntArgs struct {
		Float host.Vector    `json:"float"`
		Int   host.IntVector `json:"int"`
	}
	double3IntArgs struct {
		Double mgl64.Vec3     `json:"double"`
		Int    host.IntVector `json:"int"`
	}
	double4IntArgs struct {
		Double mgl64.Vec4     `json:"double"`
		Int    host.IntVector `json:"int"`
	}
)

// defaultOperations maps every converter function to its wire name.
func defaultOperations() map[string]Operation {
	return map[string]Operation{
		"matrix4_from": operation(func(a hostMatrixArgs) mgl64.Mat4 {
			return vecmath.Matrix4From(a.Matrix)
		}),
		"matrix4_from_translation": operation(func(a hostMatrixTranslationArgs) mgl64.Mat4 {
			return vecmath.Matrix4FromTranslation(a.Matrix, a.Translation)
		}),
		"matrix4_from_xyzw": operation(func(a hostMatrixXYZWArgs) mgl64.Mat4 {
			return vecmath.Matrix4FromXYZW(a.Matrix, a.TX, a.TY, a.TZ, a.TW)
		}),
		"matrix4_from_translation4": operation(func(a hostMatrixTranslation4Args) mgl64.Mat4 {
			return vecmath.Matrix4FromTranslation4(a.Matrix, a.Translation)
		}),
		"translation_matrix4": operation(func(a xyzwArgs) mgl64.Mat4 {
			return vecmath.TranslationMatrix4(a.TX, a.TY, a.TZ, a.TW)
		}),
		"vector3_from": operation(func(a vectorArgs) mgl64.Vec3 {
			return vecmath.Vector3From(a.Vector)
		}),
		"vector3_from_int": operation(func(a intVectorArgs) mgl64.Vec3 {
			return vecmath.Vector3FromInt(a.Vector)
		}),
		"host_matrix_from3": operation(func(a matrix3Args) host.Matrix {
			return vecmath.HostMatrixFrom3(a.Matrix)
		}),
		"host_matrix_from4": operation(func(a matrix4Args) host.Matrix {
			return vecmath.HostMatrixFrom4(a.Matrix)
		}),
		"host_matrix_from_columns": operation(func(a columnsArgs) host.Matrix {
			return vecmath.HostMatrixFromColumns(a.Column0, a.Column1, a.Column2)
		}),
		"add4d": operation(func(a floatIntArgs) mgl64.Vec4 {
			return vecmath.Add4D(a.Float, a.Int)
		}),
		"add4d_int_float": operation(func(a floatIntArgs) mgl64.Vec4 {
			return vecmath.Add4DIntFloat(a.Int, a.Float)
		}),
		"add4d_double": operation(func(a double4IntArgs) mgl64.Vec4 {
			return vecmath.Add4DDouble(a.Double, a.Int)
		}),
		"add3d": operation(func(a floatIntArgs) mgl64.Vec3 {
			return vecmath.Add3D(a.Float, a.Int)
		}),
		"add3d_int_float": operation(func(a floatIntArgs) mgl64.Vec3 {
			return vecmath.Add3DIntFloat(a.Int, a.Float)
		}),
		"add3d_double": operation(func(a double3IntArgs) mgl64.Vec3 {
			return vecmath.Add3DDouble(a.Double, a.Int)
		}),
		"subtract4d": operation(func(a floatIntArgs) mgl64.Vec4 {
			return vecmath.Subtract4D(a.Float, a.Int)
		}),
		"subtract4d_int_float": operation(func(a floatIntArgs) mgl64.Vec4 {
			return vecmath.Subtract4DIntFloat(a.Int, a.Float)
		}),
		"subtract3d": operation(func(a floatIntArgs) mgl64.Vec3 {
			return vecmath.Subtract3D(a.Float, a.Int)
		}),
		"subtract3d_int_float": operation(func(a floatIntArgs) mgl64.Vec3 {
			return vecmath.Subtract3DIntFloat(a.Int, a.Float)
		}),
	}
}

func operation[A, R any](fn func(A) R) Operation {
	shape := reflect.TypeFor[A]()
	return func(raw json.RawMessage) (any, error) {
		var args A
		if err := decodeArgs(raw, shape, &args); err != nil {
			return nil, err
		}
		return fn(args), nil
	}
}

// decodeArgs rejects missing, null and unknown fields, and arrays whose length
// differs from the vector or matrix they encode.
func decodeArgs(raw json.RawMessage, shape reflect.Type, dst any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fmt.Errorf("%w: args are required", ErrInvalidArguments)
	}
	if err := checkShape(trimmed, shape, "args"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

// checkShape walks raw alongside t. Every field of a struct must be present and
// non-null, every fixed-size array must have exactly t.Len() elements. Type
// mismatches are left to the decoder.
func checkShape(raw json.RawMessage, t reflect.Type, path string) error {
	switch t.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil
		}
		return checkFields(fields, t, path)
	case reflect.Array:
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil
		}
		if len(elems) != t.Len() {
			return fmt.Errorf("%s: want %d elements, got %d", path, t.Len(), len(elems))
		}
	}
	return nil
}

func checkFields(fields map[string]json.RawMessage, t reflect.Type, path string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if err := checkFields(fields, f.Type, path); err != nil {
				return err
			}
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		value, ok := fields[name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return fmt.Errorf("%s: missing field %q", path, name)
		}
		if err := checkShape(value, f.Type, path+"."+name); err != nil {
			return err
		}
	}
	return nil
}

func operationNames(ops map[string]Operation) []string {
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
