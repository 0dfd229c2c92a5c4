// Package lattice generates deterministic, evenly spread direction sets on
// the unit sphere using the Fibonacci (golden-angle) construction.
//
// Lattices are pure functions of their size, so they are memoized per size
// in a process-wide Cache and shared read-only by every shape that uses
// the same ray count.
package lattice

import (
	"errors"
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultSize is the ray count used by most detection models.
const DefaultSize = 96

// ErrInvalidArgument is returned when a lattice size cannot be generated.
var ErrInvalidArgument = errors.New("invalid argument")

// phi is the golden ratio.
var phi = (1 + math.Sqrt(5)) / 2

// Generate returns n unit directions on the Fibonacci sphere. Point k has
// z = -1 + 2k/(n-1) and is rotated about the z axis by the golden angle
// times k, so the sequence runs from the south pole (k = 0) to the north
// pole (k = n-1).
//
// The result is bit-identical across calls for the same n.
func Generate(n int) ([]v3.Vec, error) {
	if n < 2 {
		return nil, fmt.Errorf("lattice: size %d: need at least 2 directions: %w", n, ErrInvalidArgument)
	}

	angle := 2 * math.Pi * (1 - 1/phi)
	dirs := make([]v3.Vec, n)
	for k := range dirs {
		z := -1 + 2*float64(k)/float64(n-1)
		r := math.Sqrt(1 - z*z)
		// The poles can produce a tiny negative radicand.
		if math.IsNaN(r) {
			r = 0
		}
		theta := angle * float64(k)
		dirs[k] = v3.Vec{
			X: r * math.Cos(theta),
			Y: r * math.Sin(theta),
			Z: z,
		}
	}
	return dirs, nil
}
