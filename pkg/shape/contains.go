package shape

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// facet is the local surface plane used for one query direction.
type facet struct {
	origin v3.Vec
	normal v3.Vec // unit length, or zero when the triangle is degenerate
}

// facetToward returns the plane through the vertices of the three lattice
// directions nearest to dir, which must be a unit vector.
func (s *Shape) facetToward(dir v3.Vec) (facet, error) {
	nn := s.index.Nearest(dir, 3)
	if len(nn) != 3 {
		return facet{}, fmt.Errorf("shape: direction index returned %d neighbours, want 3: %w", len(nn), ErrInvariant)
	}
	v0, v1, v2 := s.vertices[nn[0]], s.vertices[nn[1]], s.vertices[nn[2]]
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	if l := n.Length(); l > 0 {
		n = n.MulScalar(1 / l)
	} else {
		n = v3.Vec{}
	}
	return facet{origin: v0, normal: n}, nil
}

// Classify reports whether p is inside the shape. p is inside when it lies
// on the same side of its local facet plane as the center, where lying on
// the plane is its own side. The center itself is always inside.
func (s *Shape) Classify(p v3.Vec) (bool, error) {
	if p == s.center {
		return true, nil
	}
	if !finite(p) {
		return false, fmt.Errorf("shape: point %v is not finite: %w", p, ErrInvalidArgument)
	}

	d := p.Sub(s.center)
	f, err := s.facetToward(d.MulScalar(1 / d.Length()))
	if err != nil {
		return false, err
	}
	// A degenerate facet has a zero normal, so both signs are zero and the
	// point counts as inside.
	sp := sign(f.normal.Dot(p.Sub(f.origin)))
	sc := sign(f.normal.Dot(s.center.Sub(f.origin)))
	return sp == sc, nil
}

// Contains is Classify for callers that treat an index failure as a bug.
// It panics if the direction index is broken.
func (s *Shape) Contains(p v3.Vec) bool {
	in, err := s.Classify(p)
	if err != nil {
		panic(err)
	}
	return in
}

// ContainsPoint adapts a raw coordinate triple.
func (s *Shape) ContainsPoint(p []float64) (bool, error) {
	if len(p) != 3 {
		return false, fmt.Errorf("shape: point has %d coordinates, want 3: %w", len(p), ErrInvalidArgument)
	}
	return s.Classify(v3.Vec{X: p[0], Y: p[1], Z: p[2]})
}

// SignedDistance returns the distance from p to its local facet plane,
// negative on the center side. Its sign agrees with Classify off the facet
// planes and away from degenerate facets. The magnitude is only meaningful
// near the surface.
func (s *Shape) SignedDistance(p v3.Vec) float64 {
	d := p.Sub(s.center)
	dir := s.directions[0]
	if l := d.Length(); l > 0 {
		dir = d.MulScalar(1 / l)
	}
	f, err := s.facetToward(dir)
	if err != nil {
		panic(err)
	}
	if f.normal == (v3.Vec{}) {
		// Fall back to the radial distance past the nearest vertex.
		return d.Length() - f.origin.Sub(s.center).Length()
	}
	n := f.normal
	if n.Dot(s.center.Sub(f.origin)) > 0 {
		n = n.MulScalar(-1)
	}
	return n.Dot(p.Sub(f.origin))
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
