package membench

import (
	"fmt"
	"io"
)

const reportRule = "-------------------------------------------------------------"

// writePreamble prints the banner, the run parameters and the clock
// calibration results. It runs before the timed trials so a long run
// announces itself first.
func writePreamble(w io.Writer, res *Results) {
	cfg := res.Config
	bytesPerElem := cfg.Precision.Size()
	perArrayMiB := float64(bytesPerElem) * float64(cfg.N) / 1024.0 / 1024.0
	totalMiB := 3.0 * perArrayMiB

	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w, "membench: sustainable memory bandwidth")
	fmt.Fprintln(w, reportRule)
	fmt.Fprintf(w, "This system uses %d bytes per array element.\n", bytesPerElem)
	fmt.Fprintln(w, reportRule)
	fmt.Fprintf(w, "Array size = %d (elements), Offset = %d (elements)\n", cfg.N, cfg.Offset)
	fmt.Fprintf(w, "Memory per array = %.1f MiB (= %.1f GiB).\n", perArrayMiB, perArrayMiB/1024.0)
	fmt.Fprintf(w, "Total memory required = %.1f MiB (= %.1f GiB).\n", totalMiB, totalMiB/1024.0)
	fmt.Fprintf(w, "Each kernel will be executed %d times.\n", cfg.NTimes)
	fmt.Fprintln(w, " The *best* time for each kernel (excluding the first iteration)")
	fmt.Fprintln(w, " will be used to compute the reported bandwidth.")
	fmt.Fprintln(w, reportRule)
	fmt.Fprintf(w, "Number of workers requested = %d\n", res.Workers)
	fmt.Fprintf(w, "Number of workers counted = %d\n", res.WorkersCounted)
	fmt.Fprintln(w, GetCPUInfo())
	fmt.Fprintln(w, reportRule)

	if res.QuantumUsec >= 1 {
		fmt.Fprintf(w, "Your clock granularity/precision appears to be %d microseconds.\n", res.QuantumUsec)
	} else {
		fmt.Fprintln(w, "Your clock granularity appears to be less than one microsecond.")
	}
	quantum := res.QuantumUsec
	if quantum < 1 {
		quantum = 1
	}
	fmt.Fprintf(w, "Each test below will take on the order of %d microseconds.\n", int(res.ProbeUsec))
	fmt.Fprintf(w, "   (= %d clock ticks)\n", int(res.ProbeUsec)/quantum)
	fmt.Fprintf(w, "Increase the size of the arrays if this shows that\n")
	fmt.Fprintf(w, "you are not getting at least %d clock ticks per test.\n", MinTicksPerTest)
	fmt.Fprintln(w, reportRule)
	fmt.Fprintln(w, "WARNING -- The above is only a rough guideline.")
	fmt.Fprintln(w, "For best results, please be sure you know the")
	fmt.Fprintln(w, "precision of your system timer.")
	fmt.Fprintln(w, reportRule)
}

// writeSummary prints the per-kernel statistics table and the validation
// section.
func writeSummary(w io.Writer, res *Results) {
	fmt.Fprintln(w, "Function    Best Rate MB/s  Avg time     Min time     Max time")
	for _, st := range res.Kernels {
		label := fmt.Sprintf("%-11s", st.Label+":")
		if st.Unreliable {
			fmt.Fprintf(w, "%s%12s  %11.6f  %11.6f  %11.6f\n", label,
				"n/a", st.AvgTime, st.MinTime, st.MaxTime)
			continue
		}
		fmt.Fprintf(w, "%s%12.1f  %11.6f  %11.6f  %11.6f\n", label,
			st.BandwidthMBs, st.AvgTime, st.MinTime, st.MaxTime)
	}
	for _, st := range res.Kernels {
		if st.Unreliable {
			fmt.Fprintf(w, "WARNING -- %s min time is below clock resolution; increase the array size.\n", st.Label)
		}
	}
	fmt.Fprintln(w, reportRule)

	writeValidation(w, res)
	fmt.Fprintln(w, reportRule)
}

func writeValidation(w io.Writer, res *Results) {
	failed := 0
	for _, check := range res.Checks {
		if !check.Failed {
			continue
		}
		failed++
		fmt.Fprintf(w, "Failed Validation on array %s[], AvgRelAbsErr > epsilon (%e)\n",
			check.Name, check.Epsilon)
		fmt.Fprintf(w, "     Expected Value: %e, AvgAbsErr: %e, AvgRelAbsErr: %e\n",
			check.Expected, check.AvgAbsErr, check.AvgRelErr)
		for _, detail := range check.Details {
			fmt.Fprintf(w, "         array %s: index: %d, expected: %e, observed: %e, relative error: %e\n",
				check.Name, detail.Index, detail.Expected, detail.Observed, detail.RelErr)
		}
		fmt.Fprintf(w, "     For array %s[], %d errors were found.\n", check.Name, check.ErrCount)
	}

	if failed == 0 {
		fmt.Fprintf(w, "Solution Validates: avg error less than %e on all three arrays\n",
			res.Config.Epsilon())
	}
}
