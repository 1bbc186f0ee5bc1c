// Package viz renders terminal plots of distributions, CDF tables,
// sampled clouds, and sweep results.
package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/qplex/atombeam/internal/oven"
	"github.com/qplex/atombeam/internal/sweep"
)

const (
	plotWidth  = 80
	plotHeight = 15
)

// DensityPlot renders the (unnormalized) density of dist on a linear
// grid across its domain.
func DensityPlot(dist oven.SpeedDistribution, samples int) string {
	if samples < 2 {
		samples = 2
	}
	vs := make([]float64, samples)
	step := (dist.VMax - dist.VMin) / float64(samples-1)
	for i := range vs {
		vs[i] = dist.VMin + float64(i)*step
	}
	return asciigraph.Plot(dist.Eval(vs),
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption(dist.Name+" speed density"),
	)
}

// CDFPlot renders a CDF table downsampled to the plot width.
func CDFPlot(table *oven.CDFTable, caption string) string {
	return asciigraph.Plot(downsample(table.CDF, plotWidth),
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption(caption),
	)
}

// RatePlot renders capture rate against detuning, in scan order.
func RatePlot(points []sweep.Point) string {
	rates := make([]float64, len(points))
	for i, p := range points {
		rates[i] = p.Rate
	}
	return asciigraph.Plot(rates,
		asciigraph.Width(plotWidth),
		asciigraph.Height(plotHeight),
		asciigraph.Caption("capture rate vs detuning step"),
	)
}

func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	scale := float64(len(data)-1) / float64(n-1)
	for i := range out {
		out[i] = data[int(math.Round(float64(i)*scale))]
	}
	return out
}
