package staging

import (
	"fmt"

	"github.com/waywardmonkeys/USD/value"
)

// ElementType identifies the binary element type of one buffer component.
type ElementType int

// Supported element types.
const (
	// ElementInvalid is the zero ElementType, used by invalid tuple types.
	ElementInvalid ElementType = iota

	// ElementInt32 is a 32-bit signed integer.
	ElementInt32

	// ElementUInt32 is a 32-bit unsigned integer.
	ElementUInt32

	// ElementFloat is a single-precision float.
	ElementFloat

	// ElementDouble is a double-precision float.
	ElementDouble

	// ElementFloatMat4 is a single-precision 4x4 matrix.
	ElementFloatMat4

	// ElementDoubleMat4 is a double-precision 4x4 matrix.
	ElementDoubleMat4
)

// String returns the string representation of the ElementType.
func (t ElementType) String() string {
	switch t {
	case ElementInvalid:
		return "invalid"
	case ElementInt32:
		return "int32"
	case ElementUInt32:
		return "uint32"
	case ElementFloat:
		return "float"
	case ElementDouble:
		return "double"
	case ElementFloatMat4:
		return "floatmat4"
	case ElementDoubleMat4:
		return "doublemat4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Size returns the byte size of one element of this type, or 0 for
// ElementInvalid.
func (t ElementType) Size() int {
	switch t {
	case ElementInt32, ElementUInt32, ElementFloat:
		return 4
	case ElementDouble:
		return 8
	case ElementFloatMat4:
		return 64
	case ElementDoubleMat4:
		return 128
	default:
		return 0
	}
}

// ScalarCount returns the number of scalars making up one element:
// 1 for the scalar types, 16 for the matrix types.
func (t ElementType) ScalarCount() int {
	switch t {
	case ElementFloatMat4, ElementDoubleMat4:
		return 16
	case ElementInvalid:
		return 0
	default:
		return 1
	}
}

// TupleType describes the binary layout of one logical buffer entry:
// Count elements of type Type, packed contiguously.
//
// The zero TupleType is the invalid tuple type, carried by buffer sources
// whose construction failed.
type TupleType struct {
	// Type is the element type.
	Type ElementType

	// Count is the number of elements per entry. For a source built from
	// plain vectors this is the component count; an array-size multiplier
	// scales it further.
	Count int
}

// IsValid reports whether the tuple type describes an actual layout.
func (tt TupleType) IsValid() bool {
	return tt.Type != ElementInvalid && tt.Count > 0
}

// Size returns the byte size of one entry.
func (tt TupleType) Size() int {
	return tt.Type.Size() * tt.Count
}

// String returns a diagnostic representation such as "float[3]".
func (tt TupleType) String() string {
	return fmt.Sprintf("%s[%d]", tt.Type, tt.Count)
}

// elementTypeFor maps a value kind to its element type and base component
// count (the per-entry count before any array-size multiplier). The
// boolean reports whether the kind has a buffer representation.
func elementTypeFor(k value.Kind) (ElementType, int, bool) {
	switch k {
	case value.KindInt32, value.KindInt32Slice:
		return ElementInt32, 1, true
	case value.KindUInt32, value.KindUInt32Slice:
		return ElementUInt32, 1, true
	case value.KindFloat32, value.KindFloat32Slice:
		return ElementFloat, 1, true
	case value.KindFloat64, value.KindFloat64Slice:
		return ElementDouble, 1, true
	case value.KindVec2f, value.KindVec2fSlice:
		return ElementFloat, 2, true
	case value.KindVec3f, value.KindVec3fSlice:
		return ElementFloat, 3, true
	case value.KindVec4f, value.KindVec4fSlice:
		return ElementFloat, 4, true
	case value.KindVec2d, value.KindVec2dSlice:
		return ElementDouble, 2, true
	case value.KindVec3d, value.KindVec3dSlice:
		return ElementDouble, 3, true
	case value.KindVec4d, value.KindVec4dSlice:
		return ElementDouble, 4, true
	case value.KindMat4f, value.KindMat4fSlice:
		return ElementFloatMat4, 1, true
	case value.KindMat4d, value.KindMat4dSlice:
		return ElementDoubleMat4, 1, true
	default:
		return ElementInvalid, 0, false
	}
}
