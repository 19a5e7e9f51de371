// Copyright ©2024 The Membench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package membench measures sustainable memory bandwidth on the CPU using
// the four classic streaming kernels: Copy, Scale, Add and Triad.
//
// The harness allocates three large arrays, runs each kernel for a fixed
// number of trials, and reports the best-case bandwidth per kernel together
// with average and worst-case times. The first trial of every kernel is a
// warm-up and is excluded from the statistics. After the timed trials the
// final array contents are validated against an independently computed
// scalar recurrence, so a mis-scheduled or mis-indexed kernel shows up as
// a validation failure rather than a silently wrong number.
//
// Element loops are data parallel with no cross-index dependency, so the
// harness fans each kernel out across a fixed worker pool with one
// contiguous index range per worker. Timing brackets the full loop
// including the join barrier.
//
// Example usage:
//
//	cfg := membench.DefaultConfig()
//	cfg.N = 50_000_000
//	results, err := membench.Run(cfg, os.Stdout)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !results.Validated() {
//		fmt.Println("validation failed, results are suspect")
//	}
package membench
