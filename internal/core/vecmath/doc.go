// Package vecmath converts between the engine-native single-precision types in
// package host and the double-precision mgl64 types used for globe-scale math.
//
// Everything here is a pure function over values: nothing allocates beyond the
// returned value, nothing fails and every function is safe for concurrent use.
// Float to double conversions are exact. Conversions back to the host narrow
// each entry to float32.
package vecmath
