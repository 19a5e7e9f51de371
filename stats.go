package membench

// KernelStats holds the per-kernel reduction over the non-warm-up trials.
type KernelStats struct {
	Label         string  `json:"label"`
	BytesPerTrial uint64  `json:"bytes_per_trial"`
	MinTime       float64 `json:"min_time_s"`
	AvgTime       float64 `json:"avg_time_s"`
	MaxTime       float64 `json:"max_time_s"`

	// BandwidthMBs is 1e-6 * BytesPerTrial / MinTime, or 0 when the
	// minimum time collapsed to zero.
	BandwidthMBs float64 `json:"bandwidth_mb_s"`

	// Unreliable is set when MinTime is zero: the clock could not resolve
	// the kernel at the configured array size. Bandwidth is meaningless
	// then and the report says so instead of printing Inf.
	Unreliable bool `json:"unreliable,omitempty"`

	// Times holds every trial's elapsed seconds, warm-up first.
	Times []float64 `json:"-"`
}

// reduceTrials folds one kernel's trial times into its statistics. The
// first trial is the warm-up and never enters the reduction.
func reduceTrials(label string, bytesPerTrial uint64, times []float64) KernelStats {
	st := KernelStats{
		Label:         label,
		BytesPerTrial: bytesPerTrial,
		Times:         times,
	}

	st.MinTime = times[1]
	st.MaxTime = times[1]
	sum := 0.0
	for _, t := range times[1:] {
		if t < st.MinTime {
			st.MinTime = t
		}
		if t > st.MaxTime {
			st.MaxTime = t
		}
		sum += t
	}
	st.AvgTime = sum / float64(len(times)-1)

	if st.MinTime > 0 {
		st.BandwidthMBs = 1e-6 * float64(bytesPerTrial) / st.MinTime
	} else {
		st.Unreliable = true
	}

	return st
}
