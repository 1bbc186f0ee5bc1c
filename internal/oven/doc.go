// Package oven samples the initial phase-space distribution of atoms
// effusing from a heated source through a finite circular aperture.
//
// Velocities come from two independent physical distributions, a
// flux-weighted axial speed model and a transverse effusive model,
// each discretized into a cumulative distribution table and drawn by
// inverse transform sampling. Positions come from rejection sampling of a 2-D
// Gaussian profile truncated to the aperture disc. A [Source] combines
// both into the per-particle 6-vectors handed to the propagator.
//
// Axial model: A. Dareau, PhD thesis, ENS Paris (2015).
// Transverse model: Greenland et al., J. Phys. D 18, 1223 (1985), eq. 13.
package oven
