package staging

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestElementTypeSize(t *testing.T) {
	tests := []struct {
		et   ElementType
		want int
	}{
		{ElementInvalid, 0},
		{ElementInt32, 4},
		{ElementUInt32, 4},
		{ElementFloat, 4},
		{ElementDouble, 8},
		{ElementFloatMat4, 64},
		{ElementDoubleMat4, 128},
	}
	for _, tt := range tests {
		if got := tt.et.Size(); got != tt.want {
			t.Errorf("%v.Size() = %d, want %d", tt.et, got, tt.want)
		}
	}
}

func TestElementTypeScalarCount(t *testing.T) {
	if got := ElementFloat.ScalarCount(); got != 1 {
		t.Errorf("ElementFloat.ScalarCount() = %d, want 1", got)
	}
	if got := ElementDoubleMat4.ScalarCount(); got != 16 {
		t.Errorf("ElementDoubleMat4.ScalarCount() = %d, want 16", got)
	}
	if got := ElementInvalid.ScalarCount(); got != 0 {
		t.Errorf("ElementInvalid.ScalarCount() = %d, want 0", got)
	}
}

func TestTupleType(t *testing.T) {
	tt := TupleType{Type: ElementFloat, Count: 3}

	if !tt.IsValid() {
		t.Error("IsValid() = false, want true")
	}
	if got := tt.Size(); got != 12 {
		t.Errorf("Size() = %d, want 12", got)
	}
	if got := tt.String(); got != "float[3]" {
		t.Errorf("String() = %q, want %q", got, "float[3]")
	}

	var zero TupleType
	if zero.IsValid() {
		t.Error("zero TupleType IsValid() = true, want false")
	}
	if zero.Size() != 0 {
		t.Errorf("zero TupleType Size() = %d, want 0", zero.Size())
	}
}

func TestVertexFormat(t *testing.T) {
	tests := []struct {
		tt     TupleType
		want   gputypes.VertexFormat
		wantOK bool
	}{
		{TupleType{ElementFloat, 1}, gputypes.VertexFormatFloat32, true},
		{TupleType{ElementFloat, 2}, gputypes.VertexFormatFloat32x2, true},
		{TupleType{ElementFloat, 3}, gputypes.VertexFormatFloat32x3, true},
		{TupleType{ElementFloat, 4}, gputypes.VertexFormatFloat32x4, true},
		{TupleType{ElementInt32, 2}, gputypes.VertexFormatSint32x2, true},
		{TupleType{ElementUInt32, 1}, gputypes.VertexFormatUint32, true},
		{TupleType{ElementUInt32, 4}, gputypes.VertexFormatUint32x4, true},
		{TupleType{ElementFloat, 5}, 0, false},
		{TupleType{ElementDouble, 3}, 0, false},
		{TupleType{ElementFloatMat4, 1}, 0, false},
		{TupleType{ElementInvalid, 0}, 0, false},
	}
	for _, tt := range tests {
		got, ok := tt.tt.VertexFormat()
		if ok != tt.wantOK {
			t.Errorf("%v.VertexFormat() ok = %v, want %v", tt.tt, ok, tt.wantOK)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("%v.VertexFormat() = %v, want %v", tt.tt, got, tt.want)
		}
	}
}
