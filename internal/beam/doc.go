// Package beam defines the phase-space types shared by the sampling,
// propagation, and classification stages:
//
//   - [State]: one particle's 6-component phase-space vector
//   - [Cloud]: an ordered collection of particles
//   - [History]: per-particle state sampled on a common time grid
//   - [Propagator]: the narrow boundary to the trajectory engine
//
// The package ships a single [Ballistic] propagator that applies free
// flight only. Engines that compute atom-light and magnetic forces are
// external and plug in behind [Propagator].
//
// # Thread Safety
//
// Cloud and History values are built once and read-only afterward; they
// may be shared across goroutines freely. Ballistic is stateless and
// safe for concurrent use.
package beam
