package membench

import (
	"fmt"
)

// Buffers owns the three benchmark arrays for the lifetime of a run. Each
// array has n live elements plus an unused padding tail; kernels and the
// verifier only ever touch [0, n).
type Buffers[T Element] struct {
	A, B, C []T

	n int
}

// AllocBuffers allocates three arrays of n+offset elements each. The
// footprint is checked against total system memory first, where the
// platform exposes it, so an over-sized configuration fails with a
// diagnostic instead of driving the machine into swap. Any allocation
// failure is fatal to the run; there is no partial result.
func AllocBuffers[T Element](n, offset int) (*Buffers[T], error) {
	if n <= 0 {
		return nil, NewInvalidArgError("AllocBuffers", "array size must be positive")
	}
	if offset < 0 {
		return nil, NewInvalidArgError("AllocBuffers", "offset must not be negative")
	}

	var zero T
	footprint := 3 * uint64(n+offset) * uint64(elemSize(zero))
	if total := sysTotalMemory(); total > 0 && footprint > total {
		return nil, NewMemoryError("AllocBuffers",
			fmt.Sprintf("requested %d bytes across three arrays but the system has %d bytes", footprint, total), nil)
	}

	return &Buffers[T]{
		A: make([]T, n+offset),
		B: make([]T, n+offset),
		C: make([]T, n+offset),
		n: n,
	}, nil
}

// Len returns the live element count.
func (bufs *Buffers[T]) Len() int {
	return bufs.n
}

// Init fills A with 1.0, B with 2.0 and C with 0.0 across the live
// elements. Every index writes independently, so the fill is fanned out
// over the same pool the kernels use.
func (bufs *Buffers[T]) Init(pool *WorkerPool) {
	a, b, c := bufs.A, bufs.B, bufs.C
	pool.ForRange(bufs.n, func(start, end int) {
		for i := start; i < end; i++ {
			a[i] = 1.0
			b[i] = 2.0
			c[i] = 0.0
		}
	})
}
