package membench

import (
	"bytes"
	"strings"
	"testing"
)

func sampleResults() *Results {
	cfg := DefaultConfig()
	cfg.N = 1000
	cfg.NTimes = 3

	res := &Results{
		Config:         cfg,
		Workers:        4,
		WorkersCounted: 4,
		QuantumUsec:    1,
		ProbeUsec:      250,
	}
	for i, kd := range Kernels[float64]() {
		res.Kernels[i] = reduceTrials(kd.Label, kd.BytesPerTrial(cfg.N), []float64{0.5, 0.002, 0.003})
	}
	res.Checks = [3]BufferCheck{
		{Name: "a", Expected: 1.0, Epsilon: 1e-13},
		{Name: "b", Expected: 2.0, Epsilon: 1e-13},
		{Name: "c", Expected: 3.0, Epsilon: 1e-13},
	}
	return res
}

func TestWriteSummaryTable(t *testing.T) {
	var out bytes.Buffer
	writeSummary(&out, sampleResults())

	report := out.String()
	if !strings.Contains(report, "Function    Best Rate MB/s  Avg time     Min time     Max time") {
		t.Error("missing table header")
	}
	// 16000 bytes / 0.002 s = 8.0 MB/s for Copy: an 11-char label then
	// the rate in a 12-wide column.
	if !strings.Contains(report, "Copy:      "+"         8.0") {
		t.Errorf("Copy row malformed:\n%s", report)
	}
	if !strings.Contains(report, "Solution Validates") {
		t.Error("missing validation line")
	}
}

func TestWriteSummaryUnreliableKernel(t *testing.T) {
	res := sampleResults()
	res.Kernels[Scale] = reduceTrials("Scale", 16000, []float64{0.5, 0.0, 0.0})

	var out bytes.Buffer
	writeSummary(&out, res)

	report := out.String()
	if !strings.Contains(report, "n/a") {
		t.Error("unreliable kernel should print n/a instead of a rate")
	}
	if !strings.Contains(report, "WARNING -- Scale min time is below clock resolution") {
		t.Errorf("missing reliability warning:\n%s", report)
	}
	if strings.Contains(report, "Inf") || strings.Contains(report, "+Inf") {
		t.Error("report must never print Inf")
	}
}

func TestWriteValidationFailure(t *testing.T) {
	res := sampleResults()
	res.Checks[1] = BufferCheck{
		Name:      "b",
		Expected:  6.0,
		AvgAbsErr: 0.5,
		AvgRelErr: 0.083,
		Epsilon:   1e-13,
		Failed:    true,
		ErrCount:  12,
		Details: []ElementError{
			{Index: 7, Expected: 6.0, Observed: 5.5, RelErr: 0.083},
		},
	}

	var out bytes.Buffer
	writeSummary(&out, res)

	report := out.String()
	for _, want := range []string{
		"Failed Validation on array b[]",
		"Expected Value: 6.000000e+00",
		"array b: index: 7",
		"For array b[], 12 errors were found.",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("missing %q in:\n%s", want, report)
		}
	}
	if strings.Contains(report, "Solution Validates") {
		t.Error("failed run must not claim validation")
	}
}

func TestWritePreambleClockLines(t *testing.T) {
	res := sampleResults()

	var out bytes.Buffer
	writePreamble(&out, res)
	if !strings.Contains(out.String(), "clock granularity/precision appears to be 1 microseconds") {
		t.Errorf("missing quantum line:\n%s", out.String())
	}

	res.QuantumUsec = 0
	out.Reset()
	writePreamble(&out, res)
	if !strings.Contains(out.String(), "less than one microsecond") {
		t.Errorf("missing sub-microsecond line:\n%s", out.String())
	}
}
