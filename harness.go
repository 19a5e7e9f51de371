package membench

import (
	"io"
	"time"
)

// Results is everything one benchmark run produced: the resolved
// configuration, the calibration outcome, the per-kernel statistics and
// the validation verdicts.
type Results struct {
	Config  Config
	Workers int

	// WorkersCounted is the number of pool workers observed live at a
	// rendezvous barrier before the trials began; it should always equal
	// Workers.
	WorkersCounted int

	// QuantumUsec is the measured clock quantum in microseconds; values
	// below 1 mean the clock resolves finer than a microsecond.
	QuantumUsec int

	// ProbeUsec is the measured duration of one untimed doubling pass
	// over A, the early warning for under-sized arrays.
	ProbeUsec float64

	Kernels [NumKernels]KernelStats
	Checks  [3]BufferCheck

	Timestamp time.Time
}

// Validated reports whether every buffer passed validation.
func (r *Results) Validated() bool {
	for _, c := range r.Checks {
		if c.Failed {
			return false
		}
	}
	return true
}

// Run executes the full benchmark under cfg, streaming the STREAM-style
// report to w as phases complete. A nil w suppresses the report. The
// returned error covers configuration and allocation problems only;
// validation failure lives in the Results and never fails the run.
func Run(cfg Config, w io.Writer) (*Results, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w == nil {
		w = io.Discard
	}

	switch cfg.Precision {
	case Float32:
		return run[float32](cfg, w)
	default:
		return run[float64](cfg, w)
	}
}

// run is the kernel × trial state machine. Kernels execute strictly in
// Copy, Scale, Add, Triad order within each trial: each one's input is
// the previous one's output from the same trial, and the verification
// recurrence depends on that chain.
func run[T Element](cfg Config, w io.Writer) (*Results, error) {
	res := &Results{
		Config:    cfg,
		Workers:   cfg.ResolveWorkers(),
		Timestamp: time.Now(),
	}

	pool := NewWorkerPool(res.Workers)
	defer pool.Close()

	// Allocation failure aborts before any timing; a benchmark must not
	// fabricate a partial report.
	bufs, err := AllocBuffers[T](cfg.N, cfg.Offset)
	if err != nil {
		return nil, err
	}

	res.WorkersCounted = pool.CountWorkers()

	bufs.Init(pool)

	res.QuantumUsec = CheckTick()
	res.ProbeUsec = probePass(bufs, pool)

	writePreamble(w, res)

	kernels := Kernels[T]()
	var times [NumKernels][]float64
	for i := range times {
		times[i] = make([]float64, cfg.NTimes)
	}

	scalar := T(Scalar)
	a, b, c := bufs.A, bufs.B, bufs.C
	n := bufs.Len()

	for k := 0; k < cfg.NTimes; k++ {
		for _, kd := range kernels {
			start := time.Now()
			pool.ForRange(n, func(lo, hi int) {
				kd.Run(a, b, c, scalar, lo, hi)
			})
			// ForRange returns only after the join barrier, so the stop
			// timestamp covers every worker's writes.
			times[kd.ID][k] = time.Since(start).Seconds()
		}
	}

	for _, kd := range kernels {
		res.Kernels[kd.ID] = reduceTrials(kd.Label, kd.BytesPerTrial(n), times[kd.ID])
	}

	res.Checks = verifyBuffers(bufs, cfg.NTimes, cfg.Epsilon(), cfg.Verbose)

	writeSummary(w, res)

	if cfg.LogDir != "" {
		logger, err := NewSessionLogger(cfg.LogDir)
		if err != nil {
			return res, err
		}
		if err := logger.LogRun(res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// probePass times a single doubling pass over A. It is a diagnostic probe
// only, used to estimate per-test duration against the clock quantum; the
// A mutation it performs is accounted for by the verifier's pre-step.
func probePass[T Element](bufs *Buffers[T], pool *WorkerPool) float64 {
	a := bufs.A
	start := time.Now()
	pool.ForRange(bufs.Len(), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			a[i] = 2.0 * a[i]
		}
	})
	return float64(time.Since(start)) / float64(time.Microsecond)
}
