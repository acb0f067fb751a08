package staging

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/waywardmonkeys/USD/value"
)

// doubleMatrices selects the default matrix element type. Initialized
// once at startup from the USD_DOUBLE_MATRICES environment variable and
// adjustable at runtime via SetDoubleMatrices.
var doubleMatrices atomic.Bool

func init() {
	if on, err := strconv.ParseBool(os.Getenv("USD_DOUBLE_MATRICES")); err == nil {
		doubleMatrices.Store(on)
	}
}

// SetDoubleMatrices selects double-precision matrices as the default
// matrix element type for subsequently constructed matrix sources.
// Sources already constructed are unaffected: the flag is read once per
// construction, never mid-lifetime.
func SetDoubleMatrices(on bool) {
	doubleMatrices.Store(on)
}

// DefaultMatrixType returns the element type used by the matrix-based
// constructors: ElementFloatMat4 unless double matrices are enabled.
//
// Most consumers want float matrices for a compact GPU layout; numerically
// sensitive pipelines opt into double precision process-wide without
// touching call sites. Call sites that already hold a typed value and
// construct via NewValueSource bypass this policy and keep their chosen
// precision.
func DefaultMatrixType() ElementType {
	if doubleMatrices.Load() {
		return ElementDoubleMat4
	}
	return ElementFloatMat4
}

// ValueSource is a buffer source backed by a type-erased value.
//
// The source retains the value rather than copying it into a second
// buffer: the aggregation step copies Data into the aggregate later, and
// an eager copy here would make that a double copy. For the same reason a
// ValueSource represents a unique staging slot: share it by pointer, never
// duplicate it, or two copies could race independent resolutions over
// logically the same payload.
type ValueSource struct {
	resolveState

	// name correlates this source with a layout slot. Immutable.
	name string

	// v is the retained payload. Never mutated after construction.
	v value.Value

	// tupleType and numElements are derived from v and the array size at
	// construction and never change, however many times Resolve runs.
	tupleType   TupleType
	numElements int

	// err permanently invalidates the source when construction fails.
	err error
}

// NewValueSource constructs a staging buffer from a type-erased value.
//
// arraySize indicates how many value entries compose one logical element;
// pass 1 for ordinary data. The layout is computed immediately; the
// payload is not touched until the aggregator consumes it.
//
// Construction failures (unsupported value type, entry count not
// divisible by arraySize) do not panic: they mark the source permanently
// invalid, so a caller can inspect Valid and skip the malformed source
// without aborting the whole aggregation pass.
func NewValueSource(name string, v value.Value, arraySize int) *ValueSource {
	s := &ValueSource{name: name, v: v}

	et, base, ok := elementTypeFor(v.Kind())
	if !ok {
		s.fail(fmt.Errorf("%w: %s", ErrUnsupportedType, v.Kind()))
		return s
	}
	if arraySize < 1 || v.Len()%arraySize != 0 {
		s.fail(fmt.Errorf("%w: %d entries, array size %d", ErrMalformedArraySize, v.Len(), arraySize))
		return s
	}
	s.tupleType = TupleType{Type: et, Count: base * arraySize}
	s.numElements = v.Len() / arraySize
	return s
}

// NewMatrixSource constructs a staging buffer from a single 4x4 matrix,
// converted to the default matrix type (see DefaultMatrixType).
//
// To keep a specific precision regardless of the process-wide default,
// wrap the matrix in a value and use NewValueSource instead.
func NewMatrixSource(name string, m mgl64.Mat4) *ValueSource {
	if DefaultMatrixType() == ElementDoubleMat4 {
		return NewValueSource(name, value.FromMat4d(m), 1)
	}
	return NewValueSource(name, value.FromMat4f(value.Mat4dToF(m)), 1)
}

// NewMatrixArraySource constructs a staging buffer from an array of 4x4
// matrices, each converted to the default matrix type (see
// DefaultMatrixType). arraySize is as for NewValueSource.
func NewMatrixArraySource(name string, ms []mgl64.Mat4, arraySize int) *ValueSource {
	if DefaultMatrixType() == ElementDoubleMat4 {
		return NewValueSource(name, value.FromMat4dSlice(ms), arraySize)
	}
	return NewValueSource(name, value.FromMat4fSlice(value.Mat4dSliceToF(ms)), arraySize)
}

// fail records the construction error and moves the source to the
// terminal failed state. Runs before the source is shared, so plain
// writes are safe.
func (s *ValueSource) fail(err error) {
	s.err = err
	s.markFailed()
	slogger().Warn("staging: invalid buffer source", "name", s.name, "err", err)
}

// Name returns the source identifier.
func (s *ValueSource) Name() string { return s.name }

// Data returns the raw bytes of the retained value. Meaningful only after
// Resolve has returned true; callers must order reads through the
// resolution protocol.
func (s *ValueSource) Data() []byte { return s.v.Bytes() }

// TupleType returns the layout descriptor computed at construction. The
// invalid source carries the zero TupleType.
func (s *ValueSource) TupleType() TupleType { return s.tupleType }

// NumElements returns the number of top-level entries computed at
// construction. This is the entry count, not entries times components.
func (s *ValueSource) NumElements() int { return s.numElements }

// AddBufferSpecs appends this source's (name, tuple type) descriptor to
// the given collection.
func (s *ValueSource) AddBufferSpecs(specs *[]BufferSpec) {
	*specs = append(*specs, BufferSpec{Name: s.name, TupleType: s.tupleType})
}

// Resolve prepares Data for consumption. The value was fully typed at
// construction, so the winning caller only commits the resolved state.
//
// Resolve never blocks: a false return while another caller holds the
// lock means retry later, not failure. Once resolved it always returns
// true. An invalid source never resolves; its error stays available via
// Valid.
func (s *ValueSource) Resolve() bool {
	if s.tryLock() {
		s.markResolved()
		return true
	}
	return s.isResolved()
}

// Valid returns the error that permanently invalidated this source at
// construction, or nil.
func (s *ValueSource) Valid() error { return s.err }

// String returns a diagnostic line with the name, tuple type, and element
// count.
func (s *ValueSource) String() string {
	return fmt.Sprintf("%s: %s x %d", s.name, s.tupleType, s.numElements)
}
