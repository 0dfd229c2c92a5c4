// Package voxel rasterizes star-convex shapes into integer voxel regions of
// a grid. A Sampler maps a world-space shape into the grid space of one
// timepoint and resolution level, clips its bounding box to the grid and
// returns a Region whose membership predicate is evaluated lazily.
package voxel

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/chazu/starconvex/pkg/config"
	"github.com/chazu/starconvex/pkg/grid"
	"github.com/chazu/starconvex/pkg/shape"
)

// Voxel is an integer grid coordinate.
type Voxel [3]int64

// Sampler produces regions for shapes against a grid provider. It holds no
// per-call state; every Sample call returns a new, independent Region.
type Sampler struct {
	provider  grid.Provider
	observer  Observer
	shapeOpts []shape.Option
	log       *logrus.Entry
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithObserver reports every predicate evaluation of produced regions to o.
func WithObserver(o Observer) Option {
	return func(s *Sampler) { s.observer = o }
}

// WithShapeOptions configures the grid-space shapes built by Sample.
func WithShapeOptions(opts ...shape.Option) Option {
	return func(s *Sampler) { s.shapeOpts = append(s.shapeOpts, opts...) }
}

// WithLogger replaces the package logger.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Sampler) { s.log = l }
}

// NewSampler returns a sampler reading grids and transforms from p.
func NewSampler(p grid.Provider, opts ...Option) *Sampler {
	s := &Sampler{provider: p, log: config.NamedLogger("voxel")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SampleLevel0 samples at full resolution.
func (s *Sampler) SampleLevel0(sh *shape.Shape, timepoint int) (*Region, error) {
	return s.Sample(sh, timepoint, 0)
}

// Sample returns the region of sh in the grid of timepoint and level.
// Provider errors are returned wrapped and unchanged in kind. A shape
// whose clipped box is empty yields the degenerate single-voxel region at
// the origin.
func (s *Sampler) Sample(sh *shape.Shape, timepoint, level int) (*Region, error) {
	m, err := s.provider.Transform(timepoint, level)
	if err != nil {
		return nil, fmt.Errorf("voxel: transform for timepoint %d level %d: %w", timepoint, level, err)
	}
	g, err := s.provider.Grid(timepoint, level)
	if err != nil {
		return nil, fmt.Errorf("voxel: grid for timepoint %d level %d: %w", timepoint, level, err)
	}

	local, err := sh.Transform(m.Inverse(), s.shapeOpts...)
	if err != nil {
		return nil, fmt.Errorf("voxel: mapping shape into grid space: %w", err)
	}

	bb := local.BoundingBox()
	lo := [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	hi := [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	limit := g.Max()

	r := &Region{shape: local, observer: s.observer}
	for d := range 3 {
		a := math.Max(0, math.Floor(lo[d]))
		b := math.Min(float64(limit[d]), math.Ceil(hi[d]))
		if !(a <= b) {
			r.min, r.max, r.degenerate = Voxel{}, Voxel{}, true
			break
		}
		r.min[d], r.max[d] = int64(a), int64(b)
	}

	s.log.WithFields(logrus.Fields{
		"timepoint":  timepoint,
		"level":      level,
		"min":        r.min,
		"max":        r.max,
		"degenerate": r.degenerate,
	}).Debug("sampled region")

	return r, nil
}
