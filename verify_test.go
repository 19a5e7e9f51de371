package membench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExpectedValuesOnePass pins the recurrence by hand: the pre-step
// doubles A to 2, then one Copy/Scale/Add/Triad pass yields c=8, b=6,
// a=30.
func TestExpectedValuesOnePass(t *testing.T) {
	aj, bj, cj := ExpectedValues[float64](1)
	assert.Equal(t, 30.0, aj)
	assert.Equal(t, 6.0, bj)
	assert.Equal(t, 8.0, cj)
}

func TestExpectedValuesDeterministic(t *testing.T) {
	a1, b1, c1 := ExpectedValues[float64](10)
	a2, b2, c2 := ExpectedValues[float64](10)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, c1, c2)
}

// TestExpectedValuesMatchKernels runs the real kernel chain and the scalar
// shadow recurrence side by side for several trial counts; they must agree
// exactly in float64, since both perform the identical arithmetic.
func TestExpectedValuesMatchKernels(t *testing.T) {
	for _, passes := range []int{1, 2, 5, 10} {
		bufs := runChain(t, 100, passes, 1)
		aj, bj, cj := ExpectedValues[float64](passes)

		assert.Equal(t, aj, bufs.A[0], "passes=%d array a", passes)
		assert.Equal(t, bj, bufs.B[0], "passes=%d array b", passes)
		assert.Equal(t, cj, bufs.C[0], "passes=%d array c", passes)
	}
}

func TestVerifyCleanRun(t *testing.T) {
	const n = 1000
	const passes = 10

	bufs := runChain(t, n, passes, 1)
	checks := verifyBuffers(bufs, passes, 1e-13, false)

	for _, check := range checks {
		assert.False(t, check.Failed, "array %s failed: rel err %e", check.Name, check.AvgRelErr)
		assert.Less(t, check.AvgRelErr, 1e-13, "array %s", check.Name)
		assert.Zero(t, check.ErrCount)
	}
}

// TestVerifyDetectsMisindexedWrite corrupts a single element and requires
// the relative error to clear the float64 tolerance and the offending
// index to be reported.
func TestVerifyDetectsMisindexedWrite(t *testing.T) {
	const n = 1000
	const passes = 10

	bufs := runChain(t, n, passes, 1)
	bufs.A[417] = bufs.A[416] * 2 // one mis-indexed write

	checks := verifyBuffers(bufs, passes, 1e-13, true)

	aCheck := checks[0]
	require.True(t, aCheck.Failed, "corrupted array a must fail validation")
	assert.Greater(t, aCheck.AvgRelErr, 1e-13)
	assert.Equal(t, 1, aCheck.ErrCount)
	require.Len(t, aCheck.Details, 1)
	assert.Equal(t, 417, aCheck.Details[0].Index)

	// The untouched arrays still pass.
	assert.False(t, checks[1].Failed)
	assert.False(t, checks[2].Failed)
}

func TestVerifyDetailsCapped(t *testing.T) {
	const n = 100
	const passes = 2

	bufs := runChain(t, n, passes, 1)
	for i := 0; i < n; i++ {
		bufs.B[i] = -1.0
	}

	checks := verifyBuffers(bufs, passes, 1e-13, true)
	bCheck := checks[1]
	require.True(t, bCheck.Failed)
	assert.Equal(t, n, bCheck.ErrCount)
	assert.Len(t, bCheck.Details, MaxErrorsListed)
}

func TestVerifyDetailsOmittedWithoutVerbose(t *testing.T) {
	const n = 100
	const passes = 2

	bufs := runChain(t, n, passes, 1)
	bufs.C[3] = 1e9

	checks := verifyBuffers(bufs, passes, 1e-13, false)
	cCheck := checks[2]
	require.True(t, cCheck.Failed)
	assert.Equal(t, 1, cCheck.ErrCount)
	assert.Empty(t, cCheck.Details)
}

func TestVerifyFloat32Tolerance(t *testing.T) {
	const n = 500
	const passes = 10

	pool := NewWorkerPool(1)
	defer pool.Close()

	bufs, err := AllocBuffers[float32](n, 0)
	require.NoError(t, err)
	bufs.Init(pool)
	probePass(bufs, pool)

	kernels := Kernels[float32]()
	for k := 0; k < passes; k++ {
		for _, kd := range kernels {
			pool.ForRange(n, func(lo, hi int) {
				kd.Run(bufs.A, bufs.B, bufs.C, Scalar, lo, hi)
			})
		}
	}

	checks := verifyBuffers(bufs, passes, 1e-6, false)
	for _, check := range checks {
		assert.False(t, check.Failed, "array %s rel err %e", check.Name, check.AvgRelErr)
	}
}
