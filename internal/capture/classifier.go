// Package capture classifies propagated trajectories into physical
// outcome categories and reports the trapped fraction.
package capture

import (
	"errors"
	"fmt"

	"github.com/qplex/atombeam/internal/beam"
)

// Outcome is the per-particle classification label.
type Outcome uint8

const (
	// Escaped particles ended outside the trap region or crossed the
	// deep-capture boundary before the end of the recorded window.
	Escaped Outcome = iota
	// Lost particles stayed in the apparatus but were perturbed into
	// the capture zone and back out without being retained.
	Lost
	// Trapped particles ended inside the trap region and never
	// entered the capture zone deeply enough to count as an excursion.
	Trapped
)

func (o Outcome) String() string {
	switch o {
	case Escaped:
		return "escaped"
	case Lost:
		return "lost"
	case Trapped:
		return "trapped"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// ErrBadCriteria indicates classification thresholds whose ordering
// makes the outcome categories physically meaningless.
var ErrBadCriteria = errors.New("capture: criteria must satisfy 0 < innermost < trap half-width < cutoff")

// Criteria holds the long-axis thresholds of the classification, in
// the apparatus length unit. The required ordering is
// 0 < Innermost < TrapHalfWidth < Cutoff.
type Criteria struct {
	// Cutoff is the deep-capture boundary: a particle crossing it has
	// exited the simulated region.
	Cutoff float64
	// TrapHalfWidth bounds the symmetric trap region a particle must
	// end inside to be retained.
	TrapHalfWidth float64
	// Innermost separates particles that merely pass near the trap
	// from those that entered its capture zone.
	Innermost float64
	// Axis is the long-axis component index into a state (beam.Z for
	// the standard apparatus orientation).
	Axis int
}

// DefaultCriteria matches the reference apparatus: cutoff 0.35 m, trap
// half-width 0.05 m, inner threshold 0.01 m along z.
func DefaultCriteria() Criteria {
	return Criteria{Cutoff: 0.35, TrapHalfWidth: 0.05, Innermost: 0.01, Axis: beam.Z}
}

func (c Criteria) validate() error {
	if !(0 < c.Innermost && c.Innermost < c.TrapHalfWidth && c.TrapHalfWidth < c.Cutoff) {
		return fmt.Errorf("%w: innermost=%g trap=%g cutoff=%g",
			ErrBadCriteria, c.Innermost, c.TrapHalfWidth, c.Cutoff)
	}
	if c.Axis < 0 || c.Axis > beam.Z {
		return fmt.Errorf("capture: axis %d is not a position component", c.Axis)
	}
	return nil
}

// Partition is the classification result: one label per particle plus
// the index sets of each category. The sets are pairwise disjoint and
// cover every particle.
type Partition struct {
	Labels  []Outcome
	Escaped []int
	Lost    []int
	Trapped []int
}

// Rate returns the trapped fraction in [0, 1].
func (p *Partition) Rate() float64 {
	if len(p.Labels) == 0 {
		return 0
	}
	return float64(len(p.Trapped)) / float64(len(p.Labels))
}

// Classify labels every particle of the history. Per particle, over
// its long-axis series z(t):
//
//  1. find the first step with z > Cutoff; absent a crossing the cut
//     index sits past the end of the history,
//  2. escaped if the final z lies outside [-TrapHalfWidth,
//     +TrapHalfWidth] or the crossing happened before the end,
//  3. otherwise lost if max z over the history exceeds Innermost,
//  4. otherwise trapped.
//
// Particles are independent; the loop is chunked across CPUs.
func Classify(hist *beam.History, c Criteria) (*Partition, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if hist.Steps() == 0 {
		return nil, errors.New("capture: empty trajectory history")
	}

	n := hist.Particles()
	labels := make([]Outcome, n)

	beam.ParallelFor(n, 256, func(start, end int) {
		for p := start; p < end; p++ {
			labels[p] = classifyOne(hist.States[p], c)
		}
	})

	part := &Partition{Labels: labels}
	for i, l := range labels {
		switch l {
		case Escaped:
			part.Escaped = append(part.Escaped, i)
		case Lost:
			part.Lost = append(part.Lost, i)
		case Trapped:
			part.Trapped = append(part.Trapped, i)
		}
	}
	return part, nil
}

func classifyOne(traj []beam.State, c Criteria) Outcome {
	steps := len(traj)
	cut := steps
	zMax := traj[0][c.Axis]

	for k, s := range traj {
		z := s[c.Axis]
		if z > zMax {
			zMax = z
		}
		if cut == steps && z > c.Cutoff {
			cut = k
		}
	}

	zFinal := traj[steps-1][c.Axis]
	if zFinal > c.TrapHalfWidth || zFinal < -c.TrapHalfWidth || cut < steps {
		return Escaped
	}
	if zMax > c.Innermost {
		return Lost
	}
	return Trapped
}
