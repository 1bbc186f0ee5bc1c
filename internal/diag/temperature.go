// Package diag computes beam temperature diagnostics from propagated
// trajectory histories. The diagnostics read only velocity components
// and never feed back into classification.
package diag

import (
	"gonum.org/v1/gonum/stat"

	"github.com/qplex/atombeam/internal/atoms"
	"github.com/qplex/atombeam/internal/beam"
)

// RadialTemperature returns the effective transverse beam temperature
// at every recorded time: T(t) = M * <vx^2 + vy^2> / (2 kB), with the
// mean taken over particles.
func RadialTemperature(hist *beam.History, a atoms.Atom) []float64 {
	return temperature(hist, a, func(s beam.State) float64 {
		return s[beam.VX]*s[beam.VX] + s[beam.VY]*s[beam.VY]
	})
}

// AxialTemperature returns the effective axial beam temperature at
// every recorded time: T(t) = M * <vz^2> / (2 kB).
func AxialTemperature(hist *beam.History, a atoms.Atom) []float64 {
	return temperature(hist, a, func(s beam.State) float64 {
		return s[beam.VZ] * s[beam.VZ]
	})
}

// MeanSpeed returns the mean particle speed at every recorded time.
func MeanSpeed(hist *beam.History) []float64 {
	steps := hist.Steps()
	n := hist.Particles()
	out := make([]float64, steps)
	if n == 0 {
		return out
	}

	speeds := make([]float64, n)
	for k := 0; k < steps; k++ {
		for p := 0; p < n; p++ {
			speeds[p] = hist.States[p][k].Speed()
		}
		out[k] = stat.Mean(speeds, nil)
	}
	return out
}

func temperature(hist *beam.History, a atoms.Atom, vsq func(beam.State) float64) []float64 {
	steps := hist.Steps()
	n := hist.Particles()
	out := make([]float64, steps)
	if n == 0 {
		return out
	}

	sq := make([]float64, n)
	for k := 0; k < steps; k++ {
		for p := 0; p < n; p++ {
			sq[p] = vsq(hist.States[p][k])
		}
		out[k] = a.Mass * stat.Mean(sq, nil) / (2 * atoms.Boltzmann)
	}
	return out
}
