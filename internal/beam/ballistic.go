package beam

import (
	"context"
	"fmt"
)

// Ballistic propagates particles by free flight: positions advance at
// constant velocity, velocities never change. It is exact (no stepping
// error) and exists so the sampling and classification stages can run
// end to end without a force engine attached.
type Ballistic struct{}

func NewBallistic() Ballistic { return Ballistic{} }

func (Ballistic) Propagate(ctx context.Context, cloud Cloud, times []float64) (*History, error) {
	if len(cloud) == 0 {
		return nil, ErrEmptyCloud
	}
	if len(times) == 0 {
		return nil, ErrNoTimes
	}
	for k := 1; k < len(times); k++ {
		if times[k] <= times[k-1] {
			return nil, ErrUnorderedTimes
		}
	}
	for p, s := range cloud {
		if !s.IsValid() {
			return nil, fmt.Errorf("%w: particle %d", ErrInvalidState, p)
		}
	}

	t0 := times[0]
	hist := &History{
		Times:  append([]float64(nil), times...),
		States: make([][]State, len(cloud)),
	}

	for p, s0 := range cloud {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row := make([]State, len(times))
		for k, t := range times {
			dt := t - t0
			row[k] = State{
				s0[X] + s0[VX]*dt,
				s0[Y] + s0[VY]*dt,
				s0[Z] + s0[VZ]*dt,
				s0[VX],
				s0[VY],
				s0[VZ],
			}
		}
		hist.States[p] = row
	}

	return hist, nil
}
