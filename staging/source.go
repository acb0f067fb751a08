// Package staging provides transient, typed staging buffers for data on
// its way from a scene data provider into a GPU-resident aggregate buffer.
//
// A buffer source wraps not-yet-uploaded data together with its binary
// layout (a TupleType) and element count. Construction computes the layout
// eagerly; the payload itself is committed lazily by Resolve, which is
// safe to race from multiple aggregation workers and performs its work at
// most once.
//
// The typical flow:
//
//	src := staging.NewValueSource("points", value.FromVec3fSlice(pts), 1)
//	if err := src.Valid(); err != nil { ... }
//
//	var specs []staging.BufferSpec
//	src.AddBufferSpecs(&specs)       // plan layout before resolving
//
//	for !src.Resolve() { ... }       // possibly from a worker
//	upload(src.Data())               // copy into the aggregate buffer
package staging

import (
	"errors"
	"sync/atomic"
)

// Buffer source errors.
var (
	// ErrUnsupportedType is returned when a value's runtime type has no
	// buffer representation.
	ErrUnsupportedType = errors.New("staging: unsupported value type")

	// ErrMalformedArraySize is returned when the value's entry count is
	// not evenly divisible by the requested array size.
	ErrMalformedArraySize = errors.New("staging: entry count not divisible by array size")

	// ErrNoData is returned when a computed source is constructed without
	// a compute function or with an invalid layout.
	ErrNoData = errors.New("staging: source has no data")

	// ErrSizeMismatch is returned when computed data does not match the
	// declared tuple type and element count.
	ErrSizeMismatch = errors.New("staging: computed data size mismatch")
)

// BufferSource is the contract between a staging buffer and the
// aggregator that consumes it.
//
// A source is created per scene-update cycle, handed to an aggregation
// pass that resolves it (possibly from a worker goroutine) and copies
// Data into a GPU-resident aggregate at an assigned offset, then
// discarded. It holds no GPU resources itself.
type BufferSource interface {
	// Name returns the identifier correlating this source with a slot in
	// a topology or primvar layout.
	Name() string

	// Data returns the raw bytes of the payload. The contents are only
	// meaningful after Resolve has returned true; callers must order
	// their reads through the resolution protocol.
	Data() []byte

	// TupleType returns the binary layout of one logical entry.
	TupleType() TupleType

	// NumElements returns the number of top-level entries (e.g. the
	// number of vectors in an array, not the number of floats).
	NumElements() int

	// AddBufferSpecs appends this source's layout descriptor to the
	// given externally-owned collection.
	AddBufferSpecs(specs *[]BufferSpec)

	// Resolve makes Data safe and final for consumption. It never
	// blocks: false means either that another caller currently holds
	// the resolution lock (retry later) or that the source is invalid
	// (check Valid). Once it has returned true it always returns true.
	Resolve() bool

	// Valid returns the construction or resolution error that
	// permanently invalidated this source, or nil. An invalid source
	// never resolves.
	Valid() error
}

// Resolution states. A source moves unresolved -> resolving -> resolved,
// or to failed, which is terminal.
const (
	stateUnresolved int32 = iota
	stateResolving
	stateResolved
	stateFailed
)

// resolveState is the race-safe resolution status shared by all source
// kinds. The first transition out of unresolved is claimed by a single
// caller via compare-and-swap; the terminal states are published with a
// release store and observed with acquire loads, so any reader that sees
// resolved also sees the fully-initialized payload.
type resolveState struct {
	state atomic.Int32
}

// tryLock attempts the unresolved -> resolving transition. Exactly one
// caller succeeds.
func (rs *resolveState) tryLock() bool {
	return rs.state.CompareAndSwap(stateUnresolved, stateResolving)
}

// markResolved publishes the resolved state. Only the tryLock winner may
// call this.
func (rs *resolveState) markResolved() {
	rs.state.Store(stateResolved)
}

// markFailed publishes the terminal failed state. Called by the tryLock
// winner after recording the error, or during construction before the
// source is shared.
func (rs *resolveState) markFailed() {
	rs.state.Store(stateFailed)
}

// isResolved reports whether the payload is committed and visible.
func (rs *resolveState) isResolved() bool {
	return rs.state.Load() == stateResolved
}

// hasFailed reports whether the source is permanently invalid.
func (rs *resolveState) hasFailed() bool {
	return rs.state.Load() == stateFailed
}
