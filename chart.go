package membench

import (
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderBandwidthChart writes an HTML bar chart of best-rate bandwidth per
// kernel to path, one series per run in the session. Useful for eyeballing
// how bandwidth moves across worker counts or array sizes logged into the
// same session directory.
func RenderBandwidthChart(records []SessionRecord, path string) error {
	if len(records) == 0 {
		return NewInvalidArgError("RenderBandwidthChart", "no session records to chart")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Sustained memory bandwidth",
			Subtitle: "Best rate MB/s per kernel (min time over non-warm-up trials)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	labels := make([]string, 0, NumKernels)
	for k := KernelID(0); k < NumKernels; k++ {
		labels = append(labels, k.String())
	}
	bar.SetXAxis(labels)

	// One series per run, keyed by the run timestamp. Records arrive in
	// append order, so grouping by consecutive timestamps preserves runs.
	series := make(map[string][]opts.BarData)
	order := []string{}
	for _, rec := range records {
		key := rec.Timestamp.Format("15:04:05") + " " + rec.Precision
		if _, seen := series[key]; !seen {
			order = append(order, key)
		}
		series[key] = append(series[key], opts.BarData{Value: rec.BandwidthMBs})
	}
	for _, key := range order {
		bar.AddSeries(key, series[key])
	}

	f, err := os.Create(path)
	if err != nil {
		return NewExecutionError("RenderBandwidthChart", "failed to create chart file", err)
	}
	defer f.Close()

	return bar.Render(f)
}
