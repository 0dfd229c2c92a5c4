// Package shape implements star-convex 3D shapes: a center plus one
// positive distance per lattice direction. The surface between the sampled
// vertices is never stored; containment is decided against the triangle
// spanned by the three vertices whose directions are nearest to the query.
//
// Shapes are immutable after construction and safe for concurrent use.
package shape

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"

	"github.com/chazu/starconvex/pkg/lattice"
	"github.com/chazu/starconvex/pkg/spatial"
)

// MinRays is the smallest ray count that can enclose a volume.
const MinRays = 4

// Shape is a star-convex polytope sampled along lattice directions.
type Shape struct {
	center     v3.Vec
	directions []v3.Vec
	distances  []float64
	vertices   []v3.Vec
	bbox       BoundingBox
	index      spatial.Index
}

type options struct {
	build   spatial.Builder
	indexes *spatial.LatticeCache
}

// Option configures shape construction.
type Option func(*options)

// WithIndexBuilder builds a private direction index with b instead of
// sharing the cached lattice index.
func WithIndexBuilder(b spatial.Builder) Option {
	return func(o *options) { o.build = b }
}

// WithIndexCache shares lattice indexes through c.
func WithIndexCache(c *spatial.LatticeCache) Option {
	return func(o *options) { o.indexes = c }
}

func buildOptions(opts []Option) options {
	o := options{indexes: spatial.DefaultLatticeCache}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds a shape from a center and one distance per direction of the
// lattice of size len(distances). Vertex i is center + distances[i]*dir[i].
func New(center v3.Vec, distances []float64, opts ...Option) (*Shape, error) {
	if !finite(center) {
		return nil, fmt.Errorf("shape: center %v is not finite: %w", center, ErrInvalidArgument)
	}
	if len(distances) < MinRays {
		return nil, fmt.Errorf("shape: %d distances, need at least %d: %w", len(distances), MinRays, ErrInvalidArgument)
	}
	for i, d := range distances {
		if !(d > 0) || math.IsInf(d, 0) {
			return nil, fmt.Errorf("shape: distance %d is %v, want a positive finite value: %w", i, d, ErrInvalidArgument)
		}
	}

	o := buildOptions(opts)
	dirs, err := lattice.Get(len(distances))
	if err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}

	var index spatial.Index
	if o.build != nil {
		index = o.build(dirs)
	} else if index, err = o.indexes.Get(len(dirs)); err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}

	vertices := lo.Map(dirs, func(d v3.Vec, i int) v3.Vec {
		return center.Add(d.MulScalar(distances[i]))
	})

	return &Shape{
		center:     center,
		directions: dirs,
		distances:  append([]float64(nil), distances...),
		vertices:   vertices,
		bbox:       NewBoundingBox(vertices...).Include(center),
		index:      index,
	}, nil
}

// FromSlices adapts raw detection tuples. center must hold exactly three
// coordinates.
func FromSlices(center, distances []float64, opts ...Option) (*Shape, error) {
	if center == nil {
		return nil, fmt.Errorf("shape: center is absent: %w", ErrInvalidArgument)
	}
	if len(center) != 3 {
		return nil, fmt.Errorf("shape: center has %d coordinates, want 3: %w", len(center), ErrInvalidArgument)
	}
	if distances == nil {
		return nil, fmt.Errorf("shape: distances are absent: %w", ErrInvalidArgument)
	}
	return New(v3.Vec{X: center[0], Y: center[1], Z: center[2]}, distances, opts...)
}

// NewFromGeometry builds a shape whose geometry is already expressed in
// some target space, for example after an affine transform. Vertex i must
// lie along directions[i] from center. Directions are normalized and get a
// private index since they no longer match any cached lattice. An empty
// bbox is replaced by the box around the vertices.
func NewFromGeometry(center v3.Vec, vertices []v3.Vec, bbox BoundingBox, directions []v3.Vec, opts ...Option) (*Shape, error) {
	if !finite(center) {
		return nil, fmt.Errorf("shape: center %v is not finite: %w", center, ErrInvalidArgument)
	}
	if len(vertices) < MinRays {
		return nil, fmt.Errorf("shape: %d vertices, need at least %d: %w", len(vertices), MinRays, ErrInvalidArgument)
	}
	if len(directions) != len(vertices) {
		return nil, fmt.Errorf("shape: %d directions for %d vertices: %w", len(directions), len(vertices), ErrInvalidArgument)
	}

	dirs := make([]v3.Vec, len(directions))
	for i, d := range directions {
		l := d.Length()
		if !(l > 0) || math.IsInf(l, 0) {
			return nil, fmt.Errorf("shape: direction %d has length %v: %w", i, l, ErrInvalidArgument)
		}
		dirs[i] = d.MulScalar(1 / l)
	}

	o := buildOptions(opts)
	build := o.build
	if build == nil {
		build = spatial.DefaultBuilder
	}

	verts := append([]v3.Vec(nil), vertices...)
	if bbox.Empty() {
		bbox = NewBoundingBox(verts...)
	}
	return &Shape{
		center:     center,
		directions: dirs,
		distances: lo.Map(verts, func(v v3.Vec, _ int) float64 {
			return v.Sub(center).Length()
		}),
		vertices: verts,
		bbox:     bbox.Include(center),
		index:    build(dirs),
	}, nil
}

// Transform re-expresses the shape under the affine map m. Directions are
// mapped by the linear part of m only and renormalized, which keeps every
// vertex on its own ray from the mapped center.
func (s *Shape) Transform(m sdf.M44, opts ...Option) (*Shape, error) {
	origin := m.MulPosition(v3.Vec{})
	dirs := lo.Map(s.directions, func(d v3.Vec, _ int) v3.Vec {
		return m.MulPosition(d).Sub(origin)
	})
	verts := lo.Map(s.vertices, func(v v3.Vec, _ int) v3.Vec {
		return m.MulPosition(v)
	})
	return NewFromGeometry(m.MulPosition(s.center), verts, s.bbox.Transform(m), dirs, opts...)
}

// Center returns the shape center.
func (s *Shape) Center() v3.Vec { return s.center }

// Len returns the number of rays.
func (s *Shape) Len() int { return len(s.vertices) }

// BoundingBox returns the box around all vertices and the center.
func (s *Shape) BoundingBox() BoundingBox { return s.bbox }

// Vertices returns a copy of the surface samples.
func (s *Shape) Vertices() []v3.Vec { return append([]v3.Vec(nil), s.vertices...) }

// Directions returns a copy of the unit ray directions.
func (s *Shape) Directions() []v3.Vec { return append([]v3.Vec(nil), s.directions...) }

// Distances returns a copy of the ray lengths.
func (s *Shape) Distances() []float64 { return append([]float64(nil), s.distances...) }

// MinDistance returns the shortest ray.
func (s *Shape) MinDistance() float64 { return lo.Min(s.distances) }

// MaxDistance returns the longest ray.
func (s *Shape) MaxDistance() float64 { return lo.Max(s.distances) }

func finite(v v3.Vec) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
