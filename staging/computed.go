package staging

import "fmt"

// ComputedSource is a buffer source whose payload is produced by a
// compute function on first resolve.
//
// Its layout is declared up front so layout planning can run before any
// computation, while the (possibly expensive) compute runs at most once,
// inside the resolution lock, no matter how many workers race Resolve.
type ComputedSource struct {
	resolveState

	name        string
	tupleType   TupleType
	numElements int

	// fn produces the payload. Run exactly once, by the tryLock winner.
	fn func() ([]byte, error)

	// data is written by the tryLock winner before markResolved
	// publishes it; readers that observe the resolved state see it
	// fully initialized.
	data []byte

	// err is written before markFailed publishes it, under the same
	// visibility rule as data.
	err error
}

// NewComputedSource constructs a staging buffer whose payload is computed
// lazily by fn. The declared tuple type and element count must match the
// byte length fn produces; a mismatch invalidates the source at
// resolution time.
func NewComputedSource(name string, tt TupleType, numElements int, fn func() ([]byte, error)) *ComputedSource {
	s := &ComputedSource{name: name, tupleType: tt, numElements: numElements, fn: fn}
	if fn == nil || !tt.IsValid() || numElements < 0 {
		s.err = fmt.Errorf("%w: %s", ErrNoData, s.name)
		s.tupleType = TupleType{}
		s.numElements = 0
		s.markFailed()
		slogger().Warn("staging: invalid computed source", "name", name, "err", s.err)
	}
	return s
}

// Name returns the source identifier.
func (s *ComputedSource) Name() string { return s.name }

// Data returns the computed bytes. Nil until Resolve has returned true.
func (s *ComputedSource) Data() []byte {
	if !s.isResolved() {
		return nil
	}
	return s.data
}

// TupleType returns the declared layout descriptor.
func (s *ComputedSource) TupleType() TupleType { return s.tupleType }

// NumElements returns the declared element count.
func (s *ComputedSource) NumElements() int { return s.numElements }

// AddBufferSpecs appends this source's (name, tuple type) descriptor to
// the given collection.
func (s *ComputedSource) AddBufferSpecs(specs *[]BufferSpec) {
	*specs = append(*specs, BufferSpec{Name: s.name, TupleType: s.tupleType})
}

// Resolve runs the compute function at most once and commits its output.
//
// The caller that wins the resolution lock runs the compute; everyone
// else gets false until the result is published, then true. A compute
// error or a size mismatch against the declared layout permanently
// invalidates the source: Resolve stays false and Valid carries the
// error.
func (s *ComputedSource) Resolve() bool {
	if !s.tryLock() {
		return s.isResolved()
	}

	data, err := s.fn()
	if err != nil {
		s.err = fmt.Errorf("staging: compute %q: %w", s.name, err)
		s.markFailed()
		slogger().Warn("staging: compute failed", "name", s.name, "err", err)
		return false
	}
	if want := s.tupleType.Size() * s.numElements; len(data) != want {
		s.err = fmt.Errorf("%w: %q got %d bytes, want %d", ErrSizeMismatch, s.name, len(data), want)
		s.markFailed()
		slogger().Warn("staging: compute size mismatch", "name", s.name, "got", len(data), "want", want)
		return false
	}

	s.data = data
	s.markResolved()
	slogger().Debug("staging: computed source resolved", "name", s.name, "bytes", len(data))
	return true
}

// Valid returns the error that permanently invalidated this source, or
// nil. Safe to call concurrently with Resolve.
func (s *ComputedSource) Valid() error {
	if s.hasFailed() {
		return s.err
	}
	return nil
}

// String returns a diagnostic line with the name, tuple type, and element
// count.
func (s *ComputedSource) String() string {
	return fmt.Sprintf("%s: %s x %d", s.name, s.tupleType, s.numElements)
}
