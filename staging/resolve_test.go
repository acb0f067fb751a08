package staging

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/waywardmonkeys/USD/value"
)

func TestResolveAll(t *testing.T) {
	var runs atomic.Int32
	sources := make([]BufferSource, 0, 32)
	for i := 0; i < 16; i++ {
		name := fmt.Sprintf("points_%d", i)
		sources = append(sources, NewValueSource(name, value.FromVec3fSlice(make([]mgl32.Vec3, 8)), 1))
	}
	for i := 0; i < 16; i++ {
		name := fmt.Sprintf("computed_%d", i)
		sources = append(sources, NewComputedSource(name, TupleType{Type: ElementFloat, Count: 1}, 4,
			func() ([]byte, error) {
				runs.Add(1)
				return make([]byte, 16), nil
			}))
	}

	if err := ResolveAll(context.Background(), sources); err != nil {
		t.Fatalf("ResolveAll() = %v, want nil", err)
	}
	for _, src := range sources {
		if !src.Resolve() {
			t.Fatalf("%s not resolved after ResolveAll", src.Name())
		}
	}
	if got := runs.Load(); got != 16 {
		t.Errorf("computes ran %d times, want 16", got)
	}
}

func TestResolveAllCollectsInvalid(t *testing.T) {
	sources := []BufferSource{
		NewValueSource("good", value.FromFloat32Slice([]float32{1, 2}), 1),
		NewValueSource("bad_type", value.Value{}, 1),
		NewValueSource("bad_size", value.FromFloat32Slice([]float32{1, 2, 3}), 2),
		NewComputedSource("bad_compute", TupleType{Type: ElementFloat, Count: 1}, 1,
			func() ([]byte, error) { return nil, errors.New("boom") }),
	}

	err := ResolveAll(context.Background(), sources)
	if err == nil {
		t.Fatal("ResolveAll() = nil, want error")
	}
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("error does not include ErrUnsupportedType: %v", err)
	}
	if !errors.Is(err, ErrMalformedArraySize) {
		t.Errorf("error does not include ErrMalformedArraySize: %v", err)
	}

	// The healthy source still resolves despite its malformed peers.
	if !sources[0].Resolve() {
		t.Error("good source not resolved")
	}
	if sources[1].Resolve() || sources[2].Resolve() || sources[3].Resolve() {
		t.Error("invalid source reported resolved")
	}
}

func TestResolveAllEmpty(t *testing.T) {
	if err := ResolveAll(context.Background(), nil); err != nil {
		t.Errorf("ResolveAll(nil) = %v, want nil", err)
	}
}

func TestResolveAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := NewValueSource("points", value.FromFloat32Slice([]float32{1}), 1)
	err := ResolveAll(ctx, []BufferSource{src})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ResolveAll() = %v, want context.Canceled", err)
	}
}

func TestResolveAllAlreadyResolved(t *testing.T) {
	src := NewValueSource("points", value.FromFloat32Slice([]float32{1}), 1)
	if !src.Resolve() {
		t.Fatal("Resolve() = false, want true")
	}
	if err := ResolveAll(context.Background(), []BufferSource{src}); err != nil {
		t.Errorf("ResolveAll() = %v, want nil", err)
	}
}
