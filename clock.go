package membench

import (
	"time"
)

// CheckTick estimates the clock quantum: the smallest time increment the
// host clock can actually resolve. It collects TickSamples consecutive
// readings, each forced at least one microsecond apart, and returns the
// minimum observed delta in whole microseconds. A return below 1 means
// the clock resolves finer than the measurement itself; callers clamp it
// to 1 for the tick-count guidance.
func CheckTick() int {
	var timesfound [TickSamples]time.Time

	for i := 0; i < TickSamples; i++ {
		t1 := time.Now()
		t2 := time.Now()
		for t2.Sub(t1) < time.Microsecond {
			t2 = time.Now()
		}
		timesfound[i] = t2
	}

	minDelta := int(^uint(0) >> 1)
	for i := 1; i < TickSamples; i++ {
		delta := int(timesfound[i].Sub(timesfound[i-1]) / time.Microsecond)
		if delta < minDelta {
			minDelta = delta
		}
	}

	return minDelta
}
