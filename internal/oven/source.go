package oven

import (
	"math/rand/v2"

	"github.com/qplex/atombeam/internal/atoms"
	"github.com/qplex/atombeam/internal/beam"
)

// Geometry holds the oven parameters that shape both distributions.
// All lengths in meters, temperature in kelvin, speeds in m/s.
type Geometry struct {
	Temperature float64
	Diameter    float64
	Length      float64
	SigmaX      float64
	SigmaY      float64
	PlaneZ      float64

	VMinAxial      float64
	VMaxAxial      float64
	VMinTransverse float64
	VMaxTransverse float64

	GridSize int
}

// Source draws complete initial conditions for a cloud of atoms at the
// oven exit. It owns one velocity sampler and one position sampler
// sharing a seedable random source, so identical seeds reproduce
// identical clouds.
type Source struct {
	velocities *VelocitySampler
	positions  *PositionSampler
}

// NewSource validates the geometry and builds both samplers. All
// precondition failures surface here, before any draw.
func NewSource(a atoms.Atom, geo Geometry, rng *rand.Rand) (*Source, error) {
	axial := Axial(a, geo.Temperature, geo.Diameter, geo.Length, geo.VMinAxial, geo.VMaxAxial)
	transverse := Transverse(a, geo.Temperature, geo.Diameter, geo.Length, geo.VMinTransverse, geo.VMaxTransverse)

	vs, err := NewVelocitySampler(axial, transverse, geo.GridSize, rng)
	if err != nil {
		return nil, err
	}
	ps, err := NewPositionSampler(geo.SigmaX, geo.SigmaY, geo.Diameter/2, geo.PlaneZ, rng)
	if err != nil {
		return nil, err
	}
	return &Source{velocities: vs, positions: ps}, nil
}

// Sample returns a cloud of exactly n particles.
func (s *Source) Sample(n int) (beam.Cloud, error) {
	pos := s.positions.Sample(n)
	vel := s.velocities.Sample(n)
	return Assemble(pos, vel)
}
