package oven

import (
	"fmt"

	"github.com/qplex/atombeam/internal/beam"
)

// Assemble concatenates matched position and velocity samples into
// per-particle phase-space vectors. Pure composition: particle i of
// the cloud is positions[i] next to velocities[i].
func Assemble(positions, velocities []Vec3) (beam.Cloud, error) {
	if len(positions) != len(velocities) {
		return nil, fmt.Errorf("%w: %d positions, %d velocities",
			ErrShapeMismatch, len(positions), len(velocities))
	}
	cloud := make(beam.Cloud, len(positions))
	for i := range cloud {
		p, v := positions[i], velocities[i]
		cloud[i] = beam.State{p[0], p[1], p[2], v[0], v[1], v[2]}
	}
	return cloud, nil
}
