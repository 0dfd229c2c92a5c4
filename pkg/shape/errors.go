package shape

import (
	"errors"

	"github.com/chazu/starconvex/pkg/lattice"
)

var (
	// ErrInvalidArgument is returned for absent, short or non-finite
	// construction input. It is the same value as lattice.ErrInvalidArgument
	// so callers can test for either.
	ErrInvalidArgument = lattice.ErrInvalidArgument

	// ErrInvariant is returned when the direction index does not yield the
	// three neighbours a containment test needs.
	ErrInvariant = errors.New("shape invariant violated")
)
