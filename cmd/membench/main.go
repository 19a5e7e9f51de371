// Copyright ©2024 The Membench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command membench runs the streaming memory bandwidth benchmark and
// renders charts from logged sessions.
package main

import (
	"fmt"
	"os"

	"github.com/LynnColeArt/membench"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "membench",
		Short: "CPU memory bandwidth micro-benchmark (Copy/Scale/Add/Triad)",
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		arraySize int
		offset    int
		ntimes    int
		precision string
		workers   int
		verbose   bool
		logDir    string
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the four-kernel benchmark and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			prec, err := membench.ParsePrecision(precision)
			if err != nil {
				return err
			}

			cfg := membench.DefaultConfig()
			cfg.N = arraySize
			cfg.Offset = offset
			cfg.NTimes = ntimes
			cfg.Precision = prec
			cfg.Workers = workers
			cfg.Verbose = verbose
			cfg.LogDir = logDir

			// Validation failure is part of the report, not a process
			// failure: a measurement tool exits cleanly either way.
			_, err = membench.Run(cfg, os.Stdout)
			return err
		},
	}
	runCmd.Flags().IntVarP(&arraySize, "size", "n", membench.DefaultArraySize, "elements per array")
	runCmd.Flags().IntVar(&offset, "offset", 0, "padding elements past the end of each array")
	runCmd.Flags().IntVar(&ntimes, "ntimes", membench.DefaultTrials, "trials per kernel (first is warm-up)")
	runCmd.Flags().StringVar(&precision, "precision", "float64", "element precision: float32 or float64")
	runCmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = one per CPU, or $"+membench.ThreadsEnvVar+")")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list individual failing elements on validation failure")
	runCmd.Flags().StringVar(&logDir, "log-dir", "", "directory for JSON session logs (empty disables logging)")

	var (
		sessionPath string
		chartOut    string
		chartDir    string
	)

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Render an HTML bandwidth chart from a logged session",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := sessionPath
			if path == "" {
				latest, err := membench.LatestSession(chartDir)
				if err != nil {
					return err
				}
				path = latest
			}

			records, err := membench.LoadSession(path)
			if err != nil {
				return err
			}
			if err := membench.RenderBandwidthChart(records, chartOut); err != nil {
				return err
			}
			fmt.Printf("Wrote %s from %s\n", chartOut, path)
			return nil
		},
	}
	chartCmd.Flags().StringVar(&sessionPath, "session", "", "session JSON to chart (default: latest in --log-dir)")
	chartCmd.Flags().StringVar(&chartDir, "log-dir", "benchmark_logs", "directory holding session logs")
	chartCmd.Flags().StringVar(&chartOut, "out", "bandwidth.html", "output HTML file")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Run: func(cmd *cobra.Command, args []string) {
			version, sum := membench.Version()
			if version == "" {
				fmt.Println("membench (devel)")
				return
			}
			fmt.Printf("membench %s %s\n", version, sum)
		},
	}

	rootCmd.AddCommand(runCmd, chartCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
