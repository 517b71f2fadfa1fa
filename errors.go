package main

import "errors"

// Sentinel errors for the simulation core. These are configuration errors:
// they indicate a broken caller or a broken setup, never a transient
// condition, so nothing in the core retries after seeing one.
var (
	// ErrInvalidSize is returned when a 1D transform is invoked on a
	// length that is not a power of two.
	ErrInvalidSize = errors.New("quantum-canvas: transform length is not a power of two")

	// ErrSizeMismatch is returned when the wave function, potential or
	// kinetic operator buffers do not match the engine's configured grid.
	ErrSizeMismatch = errors.New("quantum-canvas: buffer length does not match grid")

	// ErrBadGrid is returned at construction time for non-positive
	// grid extents.
	ErrBadGrid = errors.New("quantum-canvas: grid extents must be positive")
)
