// Package value provides a type-erased container for scene data destined
// for GPU buffers.
//
// A Value holds either a single scalar, a single matrix, or a homogeneous
// slice of one of the supported element kinds. The container retains the
// caller's backing storage and exposes a zero-copy byte view of it, so a
// value can travel from a scene data provider to a buffer aggregator
// without intermediate copies.
//
// Values are immutable after construction: no operation mutates the
// underlying storage, and Bytes always aliases it rather than copying.
package value

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Kind identifies the runtime type held by a Value.
type Kind int

// Supported value kinds. Scalar kinds hold exactly one entry; slice kinds
// hold zero or more entries of the same element type.
const (
	// KindInvalid is the zero Kind, held by the zero Value.
	KindInvalid Kind = iota

	KindInt32
	KindUInt32
	KindFloat32
	KindFloat64
	KindVec2f
	KindVec3f
	KindVec4f
	KindVec2d
	KindVec3d
	KindVec4d
	KindMat4f
	KindMat4d

	KindInt32Slice
	KindUInt32Slice
	KindFloat32Slice
	KindFloat64Slice
	KindVec2fSlice
	KindVec3fSlice
	KindVec4fSlice
	KindVec2dSlice
	KindVec3dSlice
	KindVec4dSlice
	KindMat4fSlice
	KindMat4dSlice
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt32:
		return "int32"
	case KindUInt32:
		return "uint32"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindVec2f:
		return "vec2f"
	case KindVec3f:
		return "vec3f"
	case KindVec4f:
		return "vec4f"
	case KindVec2d:
		return "vec2d"
	case KindVec3d:
		return "vec3d"
	case KindVec4d:
		return "vec4d"
	case KindMat4f:
		return "mat4f"
	case KindMat4d:
		return "mat4d"
	case KindInt32Slice:
		return "int32[]"
	case KindUInt32Slice:
		return "uint32[]"
	case KindFloat32Slice:
		return "float32[]"
	case KindFloat64Slice:
		return "float64[]"
	case KindVec2fSlice:
		return "vec2f[]"
	case KindVec3fSlice:
		return "vec3f[]"
	case KindVec4fSlice:
		return "vec4f[]"
	case KindVec2dSlice:
		return "vec2d[]"
	case KindVec3dSlice:
		return "vec3d[]"
	case KindVec4dSlice:
		return "vec4d[]"
	case KindMat4fSlice:
		return "mat4f[]"
	case KindMat4dSlice:
		return "mat4d[]"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Value is a type-erased, immutable view of scene data.
//
// The zero Value has KindInvalid, zero length, and nil bytes. Construct
// Values with the From* functions.
type Value struct {
	// kind is the runtime kind of data.
	kind Kind

	// data retains the concrete storage (always a slice of the element
	// type, even for scalar kinds) so typed access remains possible.
	data any

	// bytes aliases the storage of data. Never written through.
	bytes []byte

	// n is the number of top-level entries: 1 for scalar kinds,
	// the slice length for slice kinds.
	n int
}

// bytesOf reinterprets a slice's backing array as bytes without copying.
func bytesOf[E any](s []E) []byte {
	if len(s) == 0 {
		return nil
	}
	var e E
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(e)))
}

func fromSlice[E any](kind Kind, s []E) Value {
	return Value{kind: kind, data: s, bytes: bytesOf(s), n: len(s)}
}

func fromScalar[E any](kind Kind, e E) Value {
	s := []E{e}
	return Value{kind: kind, data: s, bytes: bytesOf(s), n: 1}
}

// Scalar constructors.

// FromInt32 wraps a single int32.
func FromInt32(v int32) Value { return fromScalar(KindInt32, v) }

// FromUInt32 wraps a single uint32.
func FromUInt32(v uint32) Value { return fromScalar(KindUInt32, v) }

// FromFloat32 wraps a single float32.
func FromFloat32(v float32) Value { return fromScalar(KindFloat32, v) }

// FromFloat64 wraps a single float64.
func FromFloat64(v float64) Value { return fromScalar(KindFloat64, v) }

// FromVec2f wraps a single single-precision 2-component vector.
func FromVec2f(v mgl32.Vec2) Value { return fromScalar(KindVec2f, v) }

// FromVec3f wraps a single single-precision 3-component vector.
func FromVec3f(v mgl32.Vec3) Value { return fromScalar(KindVec3f, v) }

// FromVec4f wraps a single single-precision 4-component vector.
func FromVec4f(v mgl32.Vec4) Value { return fromScalar(KindVec4f, v) }

// FromVec2d wraps a single double-precision 2-component vector.
func FromVec2d(v mgl64.Vec2) Value { return fromScalar(KindVec2d, v) }

// FromVec3d wraps a single double-precision 3-component vector.
func FromVec3d(v mgl64.Vec3) Value { return fromScalar(KindVec3d, v) }

// FromVec4d wraps a single double-precision 4-component vector.
func FromVec4d(v mgl64.Vec4) Value { return fromScalar(KindVec4d, v) }

// FromMat4f wraps a single single-precision 4x4 matrix.
func FromMat4f(m mgl32.Mat4) Value { return fromScalar(KindMat4f, m) }

// FromMat4d wraps a single double-precision 4x4 matrix.
func FromMat4d(m mgl64.Mat4) Value { return fromScalar(KindMat4d, m) }

// Slice constructors. The Value retains the caller's slice; the caller
// must not mutate it afterwards.

// FromInt32Slice wraps a slice of int32.
func FromInt32Slice(s []int32) Value { return fromSlice(KindInt32Slice, s) }

// FromUInt32Slice wraps a slice of uint32.
func FromUInt32Slice(s []uint32) Value { return fromSlice(KindUInt32Slice, s) }

// FromFloat32Slice wraps a slice of float32.
func FromFloat32Slice(s []float32) Value { return fromSlice(KindFloat32Slice, s) }

// FromFloat64Slice wraps a slice of float64.
func FromFloat64Slice(s []float64) Value { return fromSlice(KindFloat64Slice, s) }

// FromVec2fSlice wraps a slice of single-precision 2-component vectors.
func FromVec2fSlice(s []mgl32.Vec2) Value { return fromSlice(KindVec2fSlice, s) }

// FromVec3fSlice wraps a slice of single-precision 3-component vectors.
func FromVec3fSlice(s []mgl32.Vec3) Value { return fromSlice(KindVec3fSlice, s) }

// FromVec4fSlice wraps a slice of single-precision 4-component vectors.
func FromVec4fSlice(s []mgl32.Vec4) Value { return fromSlice(KindVec4fSlice, s) }

// FromVec2dSlice wraps a slice of double-precision 2-component vectors.
func FromVec2dSlice(s []mgl64.Vec2) Value { return fromSlice(KindVec2dSlice, s) }

// FromVec3dSlice wraps a slice of double-precision 3-component vectors.
func FromVec3dSlice(s []mgl64.Vec3) Value { return fromSlice(KindVec3dSlice, s) }

// FromVec4dSlice wraps a slice of double-precision 4-component vectors.
func FromVec4dSlice(s []mgl64.Vec4) Value { return fromSlice(KindVec4dSlice, s) }

// FromMat4fSlice wraps a slice of single-precision 4x4 matrices.
func FromMat4fSlice(s []mgl32.Mat4) Value { return fromSlice(KindMat4fSlice, s) }

// FromMat4dSlice wraps a slice of double-precision 4x4 matrices.
func FromMat4dSlice(s []mgl64.Mat4) Value { return fromSlice(KindMat4dSlice, s) }

// Kind returns the runtime kind of the held data.
func (v Value) Kind() Kind { return v.kind }

// Len returns the number of top-level entries: 1 for scalar kinds, the
// slice length for slice kinds, 0 for the zero Value.
func (v Value) Len() int { return v.n }

// IsEmpty reports whether the Value holds no data.
func (v Value) IsEmpty() bool { return v.kind == KindInvalid || v.n == 0 }

// Bytes returns a byte view aliasing the underlying storage. It never
// copies. The returned slice must not be written through; it remains
// valid as long as the Value is reachable.
func (v Value) Bytes() []byte { return v.bytes }

// Interface returns the concrete storage as a slice of the element type
// (e.g. []mgl32.Vec3 for KindVec3f and KindVec3fSlice). Returns nil for
// the zero Value.
func (v Value) Interface() any { return v.data }

// String returns a short diagnostic description.
func (v Value) String() string {
	return fmt.Sprintf("%s x %d (%d bytes)", v.kind, v.n, len(v.bytes))
}

// As extracts the concrete storage slice of a Value. The boolean reports
// whether E matches the element type of the held data.
func As[E any](v Value) ([]E, bool) {
	s, ok := v.data.([]E)
	return s, ok
}

// Mat4dToF narrows a double-precision matrix to single precision.
func Mat4dToF(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i, e := range m {
		out[i] = float32(e)
	}
	return out
}

// Mat4dSliceToF narrows a slice of double-precision matrices to single
// precision. Unlike Bytes, this allocates: the element size changes.
func Mat4dSliceToF(ms []mgl64.Mat4) []mgl32.Mat4 {
	if ms == nil {
		return nil
	}
	out := make([]mgl32.Mat4, len(ms))
	for i, m := range ms {
		out[i] = Mat4dToF(m)
	}
	return out
}
