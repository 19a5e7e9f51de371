package membench

import (
	"os"
	"runtime"
	"strconv"
)

// Precision selects the element type of the three benchmark arrays.
type Precision int

const (
	// Float64 uses 8-byte elements, the STREAM default.
	Float64 Precision = iota
	// Float32 uses 4-byte elements.
	Float32
)

// Size returns the element size in bytes.
func (p Precision) Size() int {
	if p == Float32 {
		return 4
	}
	return 8
}

// String returns the precision name as used in reports and flags.
func (p Precision) String() string {
	if p == Float32 {
		return "float32"
	}
	return "float64"
}

// ParsePrecision converts a flag value ("float32", "float64") to a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "float64", "double", "8":
		return Float64, nil
	case "float32", "single", "4":
		return Float32, nil
	}
	return Float64, NewInvalidArgError("ParsePrecision", "unknown precision: "+s)
}

// Defaults and tuning constants.
const (
	// DefaultArraySize is the per-array element count. At 8 bytes per
	// element the three arrays total 240 MB, well past any last-level
	// cache.
	DefaultArraySize = 10_000_000

	// DefaultTrials is how many times each kernel runs. The first trial
	// is a warm-up and never enters the statistics.
	DefaultTrials = 10

	// MinTrials is the smallest trial count that still leaves one
	// non-warm-up measurement.
	MinTrials = 2

	// ThreadsEnvVar overrides the worker count at process start, in the
	// spirit of OMP_NUM_THREADS.
	ThreadsEnvVar = "MEMBENCH_NUM_THREADS"

	// CacheLineSize is assumed for padding advice.
	CacheLineSize = 64

	// L3CacheSize is a typical shared last-level cache, used only to warn
	// when the working set is too small to defeat caching.
	L3CacheSize = 8 * 1024 * 1024

	// TickSamples is the number of clock deltas collected during
	// calibration.
	TickSamples = 20

	// MinTicksPerTest is the calibration guidance threshold: runs whose
	// estimated per-kernel time is under this many clock ticks are
	// unreliable.
	MinTicksPerTest = 20

	// MaxErrorsListed caps the per-element diagnostics printed for a
	// buffer that fails validation in verbose mode.
	MaxErrorsListed = 10
)

// Scalar is the multiplier used by the Scale and Triad kernels.
const Scalar = 3.0

// Config carries every knob the harness honors. It is resolved once,
// before any allocation or measurement, and never consulted again.
type Config struct {
	// N is the element count of each of the three arrays.
	N int

	// Offset pads each allocation by this many elements past N. The
	// padding is never touched by kernels; it exists for cache-line
	// alignment experiments.
	Offset int

	// NTimes is the trial count per kernel, warm-up included.
	NTimes int

	// Precision selects 4- or 8-byte elements.
	Precision Precision

	// Workers is the worker-pool size. Zero means one worker per
	// available CPU, after applying the ThreadsEnvVar override.
	Workers int

	// Verbose enables the capped per-element error listing when a buffer
	// fails validation.
	Verbose bool

	// LogDir, when non-empty, receives a JSON session log of the results.
	LogDir string
}

// DefaultConfig returns the standard STREAM configuration: 10M float64
// elements, 10 trials, no padding, one worker per CPU.
func DefaultConfig() Config {
	return Config{
		N:         DefaultArraySize,
		NTimes:    DefaultTrials,
		Precision: Float64,
	}
}

// Validate reports the first invalid field, or nil.
func (c Config) Validate() error {
	if c.N <= 0 {
		return NewInvalidArgError("Config.Validate", "array size must be positive")
	}
	if c.Offset < 0 {
		return NewInvalidArgError("Config.Validate", "offset must not be negative")
	}
	if c.NTimes < MinTrials {
		return NewInvalidArgError("Config.Validate", "trial count must be at least 2 (first trial is discarded)")
	}
	if c.Workers < 0 {
		return NewInvalidArgError("Config.Validate", "worker count must not be negative")
	}
	return nil
}

// ResolveWorkers returns the effective worker count: an explicit Workers
// field wins, then the environment override, then one per CPU. The result
// is always at least 1.
func (c Config) ResolveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	if s := os.Getenv(ThreadsEnvVar); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}

// FootprintBytes returns the total memory the three arrays will occupy,
// padding included.
func (c Config) FootprintBytes() uint64 {
	return 3 * uint64(c.N+c.Offset) * uint64(c.Precision.Size())
}

// BytesPerArray returns the bytes one array's N live elements occupy.
func (c Config) BytesPerArray() uint64 {
	return uint64(c.N) * uint64(c.Precision.Size())
}

// Epsilon returns the validation tolerance for the configured precision.
// float32 accumulates visibly more rounding over the chained trials, so
// its tolerance is looser.
func (c Config) Epsilon() float64 {
	if c.Precision == Float32 {
		return 1e-6
	}
	return 1e-13
}
