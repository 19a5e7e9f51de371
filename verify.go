package membench

import (
	"math"
)

// ElementError is one per-element diagnostic captured in verbose mode for
// a buffer that failed validation.
type ElementError struct {
	Index    int
	Expected float64
	Observed float64
	RelErr   float64
}

// BufferCheck is the validation outcome for one of the three arrays.
type BufferCheck struct {
	Name      string  `json:"name"`
	Expected  float64 `json:"expected"`
	AvgAbsErr float64 `json:"avg_abs_err"`
	AvgRelErr float64 `json:"avg_rel_err"`
	Epsilon   float64 `json:"epsilon"`
	Failed    bool    `json:"failed"`

	// ErrCount is the number of elements whose relative deviation exceeds
	// Epsilon. Only populated when the buffer-level check failed.
	ErrCount int `json:"err_count,omitempty"`

	// Details is the capped verbose listing, empty unless requested.
	Details []ElementError `json:"-"`
}

// ExpectedValues replays the scalar recurrence the kernel chain implies:
// start from the initial fill (1.0, 2.0, 0.0), apply the one-time doubling
// of A performed by the timing probe, then run the Copy, Scale, Add, Triad
// chain ntimes times on scalar shadows of the arrays. Every array element
// receives identical arithmetic, so the expected final content of each
// array is this single value at every index.
func ExpectedValues[T Element](ntimes int) (aj, bj, cj T) {
	aj, bj, cj = 1.0, 2.0, 0.0

	aj = 2.0 * aj

	scalar := T(Scalar)
	for k := 0; k < ntimes; k++ {
		cj = aj
		bj = scalar * cj
		cj = aj + bj
		aj = bj + scalar*cj
	}
	return aj, bj, cj
}

// verifyBuffers compares the observed arrays against the analytic
// expectation. Validation failure is a reported result, never an error:
// the harness finishes its report either way.
func verifyBuffers[T Element](bufs *Buffers[T], ntimes int, epsilon float64, verbose bool) [3]BufferCheck {
	aj, bj, cj := ExpectedValues[T](ntimes)

	return [3]BufferCheck{
		checkBuffer("a", bufs.A[:bufs.n], aj, epsilon, verbose),
		checkBuffer("b", bufs.B[:bufs.n], bj, epsilon, verbose),
		checkBuffer("c", bufs.C[:bufs.n], cj, epsilon, verbose),
	}
}

func checkBuffer[T Element](name string, observed []T, expected T, epsilon float64, verbose bool) BufferCheck {
	// Accumulate in the element type, matching the precision the kernels
	// themselves worked in.
	var sumErr T
	for _, v := range observed {
		d := v - expected
		if d < 0 {
			d = -d
		}
		sumErr += d
	}
	avgAbs := float64(sumErr) / float64(len(observed))
	avgRel := avgAbs / math.Abs(float64(expected))

	check := BufferCheck{
		Name:      name,
		Expected:  float64(expected),
		AvgAbsErr: avgAbs,
		AvgRelErr: avgRel,
		Epsilon:   epsilon,
	}

	if avgRel <= epsilon {
		return check
	}
	check.Failed = true

	// Count the individual offenders, keeping a bounded listing for the
	// verbose report.
	for i, v := range observed {
		rel := math.Abs(float64(v)/float64(expected) - 1.0)
		if rel > epsilon {
			check.ErrCount++
			if verbose && len(check.Details) < MaxErrorsListed {
				check.Details = append(check.Details, ElementError{
					Index:    i,
					Expected: float64(expected),
					Observed: float64(v),
					RelErr:   rel,
				})
			}
		}
	}

	return check
}
