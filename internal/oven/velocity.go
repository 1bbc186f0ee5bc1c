package oven

import (
	"math"
	"math/rand/v2"
)

// Vec3 is a 3-component sample (position or velocity).
type Vec3 [3]float64

// VelocitySampler draws full 3-D velocity vectors by inverse transform
// sampling of the axial and transverse CDF tables plus a uniform
// azimuthal angle. The three draws per particle are independent.
//
// Not safe for concurrent use: the rand source is owned by the
// sampler.
type VelocitySampler struct {
	axial      *CDFTable
	transverse *CDFTable
	rng        *rand.Rand
}

// NewVelocitySampler builds the two CDF tables for the given
// distributions at the given grid resolution (DefaultGridSize when
// gridSize <= 0) and binds them to an explicit random source.
func NewVelocitySampler(axial, transverse SpeedDistribution, gridSize int, rng *rand.Rand) (*VelocitySampler, error) {
	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}
	at, err := BuildCDF(axial, gridSize)
	if err != nil {
		return nil, err
	}
	tt, err := BuildCDF(transverse, gridSize)
	if err != nil {
		return nil, err
	}
	return &VelocitySampler{axial: at, transverse: tt, rng: rng}, nil
}

// Sample draws n velocity vectors (vx, vy, vz). The radial speed is
// resolved onto x and y through a uniform angle, the axial speed goes
// to z unchanged.
func (vs *VelocitySampler) Sample(n int) []Vec3 {
	out := make([]Vec3, n)
	for i := range out {
		vz := vs.axial.Invert(vs.rng.Float64())
		vr := vs.transverse.Invert(vs.rng.Float64())
		theta := 2 * math.Pi * vs.rng.Float64()
		out[i] = Vec3{vr * math.Cos(theta), vr * math.Sin(theta), vz}
	}
	return out
}
