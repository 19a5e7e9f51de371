package membench

import (
	"fmt"
	"runtime"
	"testing"
)

// BenchmarkKernels measures each streaming kernel at a working set large
// enough to spill the last-level cache, with the pool at full width.
func BenchmarkKernels(b *testing.B) {
	const n = 4 << 20 // 32 MiB per float64 array, 96 MiB total

	pool := NewWorkerPool(0)
	defer pool.Close()

	bufs, err := AllocBuffers[float64](n, 0)
	if err != nil {
		b.Fatalf("alloc failed: %v", err)
	}
	bufs.Init(pool)

	for _, kd := range Kernels[float64]() {
		b.Run(kd.Label, func(b *testing.B) {
			b.SetBytes(int64(kd.BytesPerTrial(n)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				pool.ForRange(n, func(lo, hi int) {
					kd.Run(bufs.A, bufs.B, bufs.C, Scalar, lo, hi)
				})
			}
		})
	}
}

// BenchmarkTriadScaling shows how Triad bandwidth scales with worker
// count. On most machines it saturates well before one worker per core;
// that plateau is the memory wall.
func BenchmarkTriadScaling(b *testing.B) {
	const n = 4 << 20

	bufs, err := AllocBuffers[float64](n, 0)
	if err != nil {
		b.Fatalf("alloc failed: %v", err)
	}

	triad := Kernels[float64]()[Triad]

	for workers := 1; workers <= runtime.NumCPU(); workers *= 2 {
		b.Run(fmt.Sprintf("Workers_%d", workers), func(b *testing.B) {
			pool := NewWorkerPool(workers)
			defer pool.Close()
			bufs.Init(pool)

			b.SetBytes(int64(triad.BytesPerTrial(n)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				pool.ForRange(n, func(lo, hi int) {
					triad.Run(bufs.A, bufs.B, bufs.C, Scalar, lo, hi)
				})
			}
		})
	}
}
