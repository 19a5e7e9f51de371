package membench

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool manages a fixed set of worker goroutines that execute
// data-parallel element loops. The pool is created once, reused by array
// initialization and by every kernel trial, and closed when the run ends.
type WorkerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool. A non-positive worker count
// means one worker per available CPU.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	pool := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}

	// Start workers
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		task()
	}
}

// Workers returns the pool size.
func (wp *WorkerPool) Workers() int {
	return wp.workers
}

// Submit adds a task to the pool
func (wp *WorkerPool) Submit(task func()) {
	wp.tasks <- task
}

// ForRange runs body over [0, n) split into one contiguous chunk per
// worker, and returns only after every chunk has finished. The join is
// part of the caller's timed region, so no writes leak past the stop
// timestamp. Chunks never overlap, so body needs no locking as long as
// each index writes only its own slots.
func (wp *WorkerPool) ForRange(n int, body func(start, end int)) {
	if n <= 0 {
		return
	}

	numWorkers := wp.workers
	if n < numWorkers {
		numWorkers = n
	}
	perWorker := (n + numWorkers - 1) / numWorkers

	var join sync.WaitGroup
	join.Add(numWorkers)

	for workerID := 0; workerID < numWorkers; workerID++ {
		start := workerID * perWorker
		end := start + perWorker
		if end > n {
			end = n
		}
		wp.Submit(func() {
			defer join.Done()
			body(start, end)
		})
	}

	join.Wait()
}

// CountWorkers proves how many workers are actually live by holding every
// one of them at a rendezvous barrier at the same time. The count appears
// in the report next to the requested size so a mis-set environment
// override is visible, the way STREAM reports counted threads.
func (wp *WorkerPool) CountWorkers() int {
	var counted int64
	var ready, release sync.WaitGroup
	ready.Add(wp.workers)
	release.Add(1)

	for i := 0; i < wp.workers; i++ {
		wp.Submit(func() {
			atomic.AddInt64(&counted, 1)
			ready.Done()
			release.Wait()
		})
	}

	ready.Wait()
	release.Done()
	return int(counted)
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	close(wp.tasks)
	wp.wg.Wait()
}
