package oven

import (
	"math"

	"github.com/qplex/atombeam/internal/atoms"
)

// SpeedDistribution is a named, unnormalized probability density over
// a scalar speed together with its valid domain. Instances are
// immutable; normalization happens when the CDF table is built.
type SpeedDistribution struct {
	Name string
	VMin float64
	VMax float64
	pdf  func(v float64) float64
}

// PDF evaluates the unnormalized density at a single speed.
func (d SpeedDistribution) PDF(v float64) float64 { return d.pdf(v) }

// Eval evaluates the density over a grid, returning a new slice.
func (d SpeedDistribution) Eval(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = d.pdf(v)
	}
	return out
}

// Axial returns the flux-weighted axial speed distribution of atoms
// that make it through an aperture of diameter d and channel length l
// from a source at the given temperature. The second factor is the
// finite-aperture transmission correction.
func Axial(a atoms.Atom, temperature, diameter, length, vMin, vMax float64) SpeedDistribution {
	m := a.Mass
	kT := atoms.Boltzmann * temperature
	prefactor := math.Sqrt(m / (2 * math.Pi * kT))
	dl2 := (diameter * diameter) / (length * length)

	return SpeedDistribution{
		Name: "axial",
		VMin: vMin,
		VMax: vMax,
		pdf: func(v float64) float64 {
			boltz := math.Exp(-m * v * v / (2 * kT))
			trans := 1 - math.Exp(-m*v*v*dl2/(2*kT))
			return prefactor * boltz * trans
		},
	}
}

// Transverse returns the effusive transverse (radial) speed
// distribution after the aperture, with s = d/l the aspect ratio.
//
// This is a 1-D marginal in v_r only: it deliberately excludes the
// 2*pi*v_r Jacobian of a true 2-D radial density. The density carries
// a 1/v singularity at v = 0, so a strictly positive vMin is required
// downstream.
func Transverse(a atoms.Atom, temperature, diameter, length, vMin, vMax float64) SpeedDistribution {
	s := diameter / length
	sigma := a.ThermalSpeed(temperature)
	shape := (1 + s*s) / (s * s)
	norm := math.Sqrt(2*math.Pi) * (math.Sqrt(1+s*s) - 1)
	amp := sigma * s * s * s / norm

	return SpeedDistribution{
		Name: "transverse",
		VMin: vMin,
		VMax: vMax,
		pdf: func(v float64) float64 {
			return amp * math.Exp(-v*v/(2*sigma*sigma)*shape) / v
		},
	}
}

// Uniform is a flat density over [vMin, vMax], used as a reference
// distribution in tests and calibration.
func Uniform(vMin, vMax float64) SpeedDistribution {
	return SpeedDistribution{
		Name: "uniform",
		VMin: vMin,
		VMax: vMax,
		pdf:  func(float64) float64 { return 1 },
	}
}
