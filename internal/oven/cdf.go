package oven

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// DefaultGridSize is the number of grid points used when building CDF
// tables. The grid is geometric, so this resolves several decades of
// speed with uniform relative spacing.
const DefaultGridSize = 200000

// CDFTable is the discrete, normalized cumulative distribution of a
// SpeedDistribution on a geometrically spaced grid. Grid is strictly
// increasing; CDF is non-decreasing with CDF[0] = 0 and
// CDF[len-1] = 1. Tables are immutable once built.
type CDFTable struct {
	Grid []float64
	CDF  []float64
}

// BuildCDF discretizes dist onto n geometrically spaced points,
// normalizes the density by trapezoidal integration, and accumulates
// trapezoidal increments into a CDF. The final entry is rescaled to
// exactly 1 to cancel the drift of the cumulative sum. Deterministic:
// identical inputs produce identical tables.
func BuildCDF(dist SpeedDistribution, n int) (*CDFTable, error) {
	if dist.VMin <= 0 || dist.VMax <= dist.VMin {
		return nil, fmt.Errorf("%w: [%g, %g] for %s distribution",
			ErrInvalidDomain, dist.VMin, dist.VMax, dist.Name)
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: grid size %d", ErrInvalidDomain, n)
	}

	grid := make([]float64, n)
	floats.LogSpan(grid, dist.VMin, dist.VMax)

	pdf := dist.Eval(grid)
	norm := integrate.Trapezoidal(grid, pdf)
	if norm <= 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return nil, fmt.Errorf("%w: density integrates to %g over [%g, %g]",
			ErrInvalidDomain, norm, dist.VMin, dist.VMax)
	}
	floats.Scale(1/norm, pdf)

	cdf := make([]float64, n)
	for i := 1; i < n; i++ {
		cdf[i] = cdf[i-1] + 0.5*(pdf[i-1]+pdf[i])*(grid[i]-grid[i-1])
	}
	floats.Scale(1/cdf[n-1], cdf)
	cdf[n-1] = 1

	return &CDFTable{Grid: grid, CDF: cdf}, nil
}

// Invert maps a probability u in [0, 1] to a speed by piecewise-linear
// interpolation of the grid against the CDF. Total over the domain:
// every u lands in [Grid[0], Grid[len-1]].
func (t *CDFTable) Invert(u float64) float64 {
	n := len(t.CDF)
	j := sort.SearchFloat64s(t.CDF, u)
	switch {
	case j <= 0:
		return t.Grid[0]
	case j >= n:
		return t.Grid[n-1]
	}
	dc := t.CDF[j] - t.CDF[j-1]
	if dc == 0 {
		// Flat segment: the density vanished there, either endpoint
		// carries zero probability mass.
		return t.Grid[j]
	}
	frac := (u - t.CDF[j-1]) / dc
	return t.Grid[j-1] + frac*(t.Grid[j]-t.Grid[j-1])
}
