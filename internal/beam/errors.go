package beam

import "errors"

// Domain errors for propagation.
var (
	// ErrNoTimes indicates an empty requested time grid.
	ErrNoTimes = errors.New("beam: empty time grid")

	// ErrUnorderedTimes indicates a time grid that is not strictly
	// increasing.
	ErrUnorderedTimes = errors.New("beam: time grid not strictly increasing")

	// ErrEmptyCloud indicates propagation was requested for zero
	// particles.
	ErrEmptyCloud = errors.New("beam: empty cloud")

	// ErrInvalidState indicates a cloud carrying a non-finite
	// component.
	ErrInvalidState = errors.New("beam: non-finite state component")
)
