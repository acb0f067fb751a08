package staging

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ResolveAll drives a set of buffer sources to resolution across
// GOMAXPROCS worker goroutines.
//
// Sources whose Resolve returns false because another worker holds the
// resolution lock are retried on a later round; sources that are invalid,
// up front or after a failed compute, are dropped and their errors
// collected. ResolveAll returns when every remaining source has resolved,
// or earlier if ctx is canceled.
//
// The returned error joins the per-source errors (and the context error
// on cancellation); nil means every source resolved.
func ResolveAll(ctx context.Context, sources []BufferSource) error {
	var errs []error

	pending := make([]BufferSource, 0, len(sources))
	for _, src := range sources {
		if err := src.Valid(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		pending = append(pending, src)
	}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		workers := runtime.GOMAXPROCS(0)
		if workers > len(pending) {
			workers = len(pending)
		}

		// Per-worker result slices; merged after the round so no
		// locking is needed while resolving.
		retry := make([][]BufferSource, workers)
		failed := make([][]error, workers)

		var wg sync.WaitGroup
		chunk := (len(pending) + workers - 1) / workers
		for w := range workers {
			lo := min(w*chunk, len(pending))
			hi := min(lo+chunk, len(pending))
			if lo == hi {
				continue
			}
			wg.Add(1)
			go func(w int, part []BufferSource) {
				defer wg.Done()
				for _, src := range part {
					if src.Resolve() {
						continue
					}
					if err := src.Valid(); err != nil {
						failed[w] = append(failed[w], fmt.Errorf("%s: %w", src.Name(), err))
						continue
					}
					retry[w] = append(retry[w], src)
				}
			}(w, pending[lo:hi])
		}
		wg.Wait()

		pending = pending[:0]
		for w := range workers {
			pending = append(pending, retry[w]...)
			errs = append(errs, failed[w]...)
		}
		if len(pending) > 0 {
			// Another worker holds a resolution lock; yield before retrying.
			runtime.Gosched()
		}
	}

	return errors.Join(errs...)
}
