package staging

import "github.com/gogpu/gputypes"

// VertexFormat returns the WebGPU vertex format matching this tuple type,
// for layout planners wiring resolved sources into vertex buffers.
//
// The boolean reports whether a matching format exists. Double-precision
// and matrix tuple types have no vertex format: WebGPU vertex attributes
// are at most four 32-bit components, so aggregators bind those layouts
// as storage data instead.
func (tt TupleType) VertexFormat() (gputypes.VertexFormat, bool) {
	switch tt.Type {
	case ElementFloat:
		switch tt.Count {
		case 1:
			return gputypes.VertexFormatFloat32, true
		case 2:
			return gputypes.VertexFormatFloat32x2, true
		case 3:
			return gputypes.VertexFormatFloat32x3, true
		case 4:
			return gputypes.VertexFormatFloat32x4, true
		}
	case ElementInt32:
		switch tt.Count {
		case 1:
			return gputypes.VertexFormatSint32, true
		case 2:
			return gputypes.VertexFormatSint32x2, true
		case 3:
			return gputypes.VertexFormatSint32x3, true
		case 4:
			return gputypes.VertexFormatSint32x4, true
		}
	case ElementUInt32:
		switch tt.Count {
		case 1:
			return gputypes.VertexFormatUint32, true
		case 2:
			return gputypes.VertexFormatUint32x2, true
		case 3:
			return gputypes.VertexFormatUint32x3, true
		case 4:
			return gputypes.VertexFormatUint32x4, true
		}
	}
	var none gputypes.VertexFormat
	return none, false
}
