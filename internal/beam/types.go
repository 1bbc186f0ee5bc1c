package beam

import (
	"context"
	"math"
)

// Component indices into a State.
const (
	X = iota
	Y
	Z
	VX
	VY
	VZ
)

// State is one particle's phase-space vector (x, y, z, vx, vy, vz).
type State [6]float64

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Speed returns the magnitude of the velocity part.
func (s State) Speed() float64 {
	return math.Sqrt(s[VX]*s[VX] + s[VY]*s[VY] + s[VZ]*s[VZ])
}

// Cloud is an ordered set of particles. Order is insertion order from
// sampling and carries no physical meaning.
type Cloud []State

func (c Cloud) Clone() Cloud {
	out := make(Cloud, len(c))
	copy(out, c)
	return out
}

// History holds the propagated states of every particle over a shared
// time grid: States[p][k] is particle p at Times[k].
type History struct {
	Times  []float64
	States [][]State
}

// Particles returns the particle count.
func (h *History) Particles() int { return len(h.States) }

// Steps returns the number of recorded time points.
func (h *History) Steps() int { return len(h.Times) }

// Axis copies component comp of particle p across all time points.
func (h *History) Axis(p, comp int) []float64 {
	out := make([]float64, len(h.States[p]))
	for k, s := range h.States[p] {
		out[k] = s[comp]
	}
	return out
}

// Propagator turns initial conditions into a trajectory history. Given
// a cloud and an ordered time grid starting at the initial instant, it
// returns the full 6-component state of every particle at every
// requested time. Implementations own all force physics; callers treat
// them as opaque.
type Propagator interface {
	Propagate(ctx context.Context, cloud Cloud, times []float64) (*History, error)
}

// TimeGrid returns n evenly spaced instants spanning [0, duration],
// the grid the sweep driver requests from the propagator.
func TimeGrid(duration float64, n int) []float64 {
	times := make([]float64, n)
	if n < 2 {
		return times
	}
	dt := duration / float64(n-1)
	for i := range times {
		times[i] = float64(i) * dt
	}
	times[n-1] = duration
	return times
}
