package grid

import (
	"fmt"
	"math"
	"sync"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ Provider = (*Pyramid)(nil)

// Pyramid is an in-memory provider holding a fixed number of timepoints,
// each with a resolution pyramid. Level l halves every axis l times
// (rounding up) and its transform scales voxel coordinates by 2^l before
// applying the base transform. Grids are allocated on first access.
type Pyramid struct {
	dims       [3]int64
	base       sdf.M44
	timepoints int
	levels     int

	mu    sync.Mutex
	grids map[[2]int]*Volume
}

// NewPyramid creates a provider whose level 0 grid has the given dims and
// maps voxels to world space with base.
func NewPyramid(dims [3]int64, base sdf.M44, timepoints, levels int) (*Pyramid, error) {
	if timepoints < 1 || levels < 1 {
		return nil, fmt.Errorf("grid: need at least one timepoint and level, got %d and %d", timepoints, levels)
	}
	for d, n := range dims {
		if n <= 0 {
			return nil, fmt.Errorf("grid: axis %d has size %d", d, n)
		}
	}
	if det := linearDeterminant(base); math.Abs(det) < 1e-12 || math.IsNaN(det) {
		return nil, fmt.Errorf("grid: base transform is not invertible (det %g)", det)
	}
	return &Pyramid{
		dims:       dims,
		base:       base,
		timepoints: timepoints,
		levels:     levels,
		grids:      make(map[[2]int]*Volume),
	}, nil
}

// Dims returns the grid size at level.
func (p *Pyramid) Dims(level int) [3]int64 {
	var out [3]int64
	for d, n := range p.dims {
		out[d] = max(1, (n+(1<<level)-1)>>level)
	}
	return out
}

func (p *Pyramid) check(timepoint, level int) error {
	if timepoint < 0 || timepoint >= p.timepoints {
		return fmt.Errorf("grid: timepoint %d of %d: %w", timepoint, p.timepoints, ErrUnavailable)
	}
	if level < 0 || level >= p.levels {
		return fmt.Errorf("grid: level %d of %d: %w", level, p.levels, ErrUnavailable)
	}
	return nil
}

// Transform implements Provider.
func (p *Pyramid) Transform(timepoint, level int) (sdf.M44, error) {
	if err := p.check(timepoint, level); err != nil {
		return sdf.M44{}, err
	}
	s := float64(int64(1) << level)
	return p.base.Mul(sdf.Scale3d(v3.Vec{X: s, Y: s, Z: s})), nil
}

// Grid implements Provider.
func (p *Pyramid) Grid(timepoint, level int) (Grid, error) {
	return p.Volume(timepoint, level)
}

// Volume is Grid returning the concrete type.
func (p *Pyramid) Volume(timepoint, level int) (*Volume, error) {
	if err := p.check(timepoint, level); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := [2]int{timepoint, level}
	if v, ok := p.grids[key]; ok {
		return v, nil
	}
	v, err := NewVolume(p.Dims(level))
	if err != nil {
		return nil, err
	}
	p.grids[key] = v
	return v, nil
}

// linearDeterminant returns the determinant of the linear part of m,
// recovered from the images of the unit axes.
func linearDeterminant(m sdf.M44) float64 {
	o := m.MulPosition(v3.Vec{})
	ex := m.MulPosition(v3.Vec{X: 1}).Sub(o)
	ey := m.MulPosition(v3.Vec{Y: 1}).Sub(o)
	ez := m.MulPosition(v3.Vec{Z: 1}).Sub(o)
	return ex.Dot(ey.Cross(ez))
}
