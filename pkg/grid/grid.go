// Package grid defines the voxel grid and transform provider consumed by
// the sampler, plus an in-memory multi-resolution implementation.
package grid

import (
	"errors"

	"github.com/deadsy/sdfx/sdf"
)

var (
	// ErrUnavailable is returned when a timepoint or resolution level
	// does not exist.
	ErrUnavailable = errors.New("resource unavailable")

	// ErrOutOfBounds is returned when writing outside a grid.
	ErrOutOfBounds = errors.New("voxel out of bounds")
)

// Grid is a dense 3D scalar volume addressed by integer voxel coordinates.
type Grid interface {
	// Max returns the largest valid index on each axis.
	Max() [3]int64
	// At returns the value at p, or 0 outside the grid.
	At(p [3]int64) float32
	// Set stores v at p.
	Set(p [3]int64, v float32) error
}

// Provider supplies grids and their voxel-to-world transforms per
// timepoint and resolution level.
type Provider interface {
	// Transform maps voxel coordinates of the level grid to world space.
	Transform(timepoint, level int) (sdf.M44, error)
	Grid(timepoint, level int) (Grid, error)
}
