// Package sweep runs the capture-rate detuning scan: for each slower
// detuning it rebuilds the optical table, propagates the same sampled
// cloud through an externally supplied engine, classifies the
// trajectories, and records the trapped fraction.
package sweep

import (
	"context"
	"fmt"
	"sync"

	"github.com/qplex/atombeam/internal/beam"
	"github.com/qplex/atombeam/internal/capture"
	"github.com/qplex/atombeam/internal/lasers"
)

// PropagatorFactory builds a trajectory engine for one optical
// configuration. Called once per detuning; each returned propagator is
// used by a single goroutine.
type PropagatorFactory func(cfg *lasers.Configuration) (beam.Propagator, error)

// Point is one sweep sample.
type Point struct {
	Detuning float64 `json:"detuning"`
	Rate     float64 `json:"rate"`
}

// Driver owns one scan. Base is the optical table whose slower
// coupling gets rewritten per detuning; Times is the grid requested
// from the propagator.
type Driver struct {
	Base      *lasers.Configuration
	Detunings []float64
	Times     []float64
	Criteria  capture.Criteria
	Factory   PropagatorFactory

	// Workers bounds concurrent detuning runs; <= 1 runs
	// sequentially.
	Workers int

	// OnPoint, when set, observes each finished point. Calls are
	// serialized but not ordered when Workers > 1.
	OnPoint func(index int, p Point)
}

// DetuningRange reproduces the reference scan for a transition of
// linewidth gamma: delta_i = -0.5*i*gamma + 0.5 for i in [2, 40).
func DetuningRange(gamma float64) []float64 {
	out := make([]float64, 0, 38)
	for i := 2; i < 40; i++ {
		out = append(out, -0.5*float64(i)*gamma+0.5)
	}
	return out
}

// Run scans all detunings over a fixed cloud and returns one point
// per detuning, in detuning order.
func (d *Driver) Run(ctx context.Context, cloud beam.Cloud) ([]Point, error) {
	if d.Factory == nil {
		return nil, fmt.Errorf("sweep: no propagator factory")
	}
	if len(d.Detunings) == 0 {
		return nil, fmt.Errorf("sweep: empty detuning list")
	}

	points := make([]Point, len(d.Detunings))
	errs := make([]error, len(d.Detunings))

	workers := d.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(d.Detunings) {
		workers = len(d.Detunings)
	}

	var mu sync.Mutex
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, det := range d.Detunings {
		wg.Add(1)
		go func(idx int, detuning float64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p, err := d.runOne(ctx, cloud, detuning)
			points[idx], errs[idx] = p, err
			if err == nil && d.OnPoint != nil {
				mu.Lock()
				d.OnPoint(idx, p)
				mu.Unlock()
			}
		}(i, det)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sweep: detuning %g: %w", d.Detunings[i], err)
		}
	}
	return points, nil
}

func (d *Driver) runOne(ctx context.Context, cloud beam.Cloud, detuning float64) (Point, error) {
	cfg := d.Base.Clone()
	cfg.RemoveCoupling("main", lasers.SlowerBeamTag)
	if err := cfg.AddCoupling(lasers.SlowerBeamTag, "main", detuning); err != nil {
		return Point{}, err
	}

	prop, err := d.Factory(cfg)
	if err != nil {
		return Point{}, err
	}

	// Each engine works on its own copy: implementations may use the
	// cloud as scratch, and runs share one sampled cloud.
	hist, err := prop.Propagate(ctx, cloud.Clone(), d.Times)
	if err != nil {
		return Point{}, err
	}

	part, err := capture.Classify(hist, d.Criteria)
	if err != nil {
		return Point{}, err
	}
	return Point{Detuning: detuning, Rate: part.Rate()}, nil
}
