package oven

import "errors"

// Precondition errors. All are detectable before any sampling loop
// starts; callers should treat them as fatal for the run.
var (
	// ErrInvalidDomain indicates speed domain bounds that cannot
	// support a CDF table (vMin <= 0 or vMax <= vMin). The transverse
	// density diverges at v = 0, so vMin must be strictly positive.
	ErrInvalidDomain = errors.New("oven: invalid speed domain")

	// ErrDegenerateAperture indicates an aperture radius or Gaussian
	// spread of zero, for which rejection sampling cannot terminate.
	ErrDegenerateAperture = errors.New("oven: degenerate aperture geometry")

	// ErrShapeMismatch indicates position and velocity collections of
	// different particle counts at assembly time.
	ErrShapeMismatch = errors.New("oven: position/velocity count mismatch")
)
