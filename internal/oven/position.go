package oven

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Oversampling applied to each rejection batch. Tunable, not a
// correctness requirement: larger values trade memory for fewer
// rounds when sigma is much wider than the aperture.
const batchOversample = 1.5

// PositionSampler produces aperture-truncated source positions:
// transverse coordinates are drawn from independent zero-mean
// Gaussians and kept only inside the circular aperture, the axial
// coordinate is fixed at the aperture plane.
//
// Not safe for concurrent use.
type PositionSampler struct {
	radius float64
	planeZ float64
	normX  distuv.Normal
	normY  distuv.Normal
}

// NewPositionSampler validates the geometry before any sampling can
// start: a zero radius or zero spread makes the expected acceptance
// probability zero and the rejection loop would never terminate.
func NewPositionSampler(sigmaX, sigmaY, radius, planeZ float64, rng *rand.Rand) (*PositionSampler, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius %g", ErrDegenerateAperture, radius)
	}
	if sigmaX <= 0 || sigmaY <= 0 {
		return nil, fmt.Errorf("%w: sigma (%g, %g)", ErrDegenerateAperture, sigmaX, sigmaY)
	}
	return &PositionSampler{
		radius: radius,
		planeZ: planeZ,
		normX:  distuv.Normal{Mu: 0, Sigma: sigmaX, Src: rng},
		normY:  distuv.Normal{Mu: 0, Sigma: sigmaY, Src: rng},
	}, nil
}

// Sample returns exactly n accepted positions. Each rejection round
// oversamples the remaining need and keeps candidates inside the
// aperture disc; excess acceptances from the final round are dropped.
func (ps *PositionSampler) Sample(n int) []Vec3 {
	r2 := ps.radius * ps.radius
	out := make([]Vec3, 0, n)

	for len(out) < n {
		remaining := n - len(out)
		batch := int(math.Ceil(batchOversample*float64(remaining))) + 10

		for i := 0; i < batch && len(out) < n; i++ {
			x := ps.normX.Rand()
			y := ps.normY.Rand()
			if x*x+y*y <= r2 {
				out = append(out, Vec3{x, y, ps.planeZ})
			}
		}
	}
	return out
}
