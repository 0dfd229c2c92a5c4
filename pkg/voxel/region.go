package voxel

import (
	"context"
	"fmt"
	"iter"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/starconvex/pkg/grid"
	"github.com/chazu/starconvex/pkg/shape"
)

// Region is an inclusive integer box of a grid together with the
// grid-space shape deciding which of its voxels belong to the object.
// Regions are immutable; membership is evaluated on demand.
type Region struct {
	min, max   Voxel
	shape      *shape.Shape
	observer   Observer
	degenerate bool
}

// Min returns the inclusive lower corner.
func (r *Region) Min() Voxel { return r.min }

// Max returns the inclusive upper corner.
func (r *Region) Max() Voxel { return r.max }

// MinAxis returns the lower bound on axis d.
func (r *Region) MinAxis(d int) int64 { return r.min[d] }

// MaxAxis returns the upper bound on axis d.
func (r *Region) MaxAxis(d int) int64 { return r.max[d] }

// Dims returns the number of candidate voxels along each axis.
func (r *Region) Dims() [3]int64 {
	return [3]int64{r.max[0] - r.min[0] + 1, r.max[1] - r.min[1] + 1, r.max[2] - r.min[2] + 1}
}

// IntervalSize returns the number of candidate voxels in the box.
func (r *Region) IntervalSize() int64 {
	d := r.Dims()
	return d[0] * d[1] * d[2]
}

// Degenerate reports whether the shape missed the grid and the region
// fell back to the single voxel at the origin.
func (r *Region) Degenerate() bool { return r.degenerate }

// Shape returns the shape expressed in grid coordinates.
func (r *Region) Shape() *shape.Shape { return r.shape }

// Center returns the grid-space shape center rounded to the nearest voxel.
func (r *Region) Center() Voxel {
	c := r.shape.Center()
	return Voxel{int64(math.Round(c.X)), int64(math.Round(c.Y)), int64(math.Round(c.Z))}
}

// InBox reports whether v lies within the integer box.
func (r *Region) InBox(v Voxel) bool {
	for d := range v {
		if v[d] < r.min[d] || v[d] > r.max[d] {
			return false
		}
	}
	return true
}

// classify evaluates membership of a voxel known to be in the box.
func (r *Region) classify(v Voxel) (bool, error) {
	in, err := r.shape.Classify(v3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])})
	if err != nil {
		return false, fmt.Errorf("voxel: classifying %v: %w", v, err)
	}
	if r.observer != nil {
		r.observer.Evaluated(v, in)
	}
	return in, nil
}

// Contains reports whether v belongs to the region. It panics if the
// shape's direction index is broken.
func (r *Region) Contains(v Voxel) bool {
	if !r.InBox(v) {
		return false
	}
	in, err := r.classify(v)
	if err != nil {
		panic(err)
	}
	return in
}

// Voxels yields the member voxels, x fastest then y then z. The sequence
// may be ranged over any number of times; each pass re-evaluates the
// predicate.
func (r *Region) Voxels() iter.Seq[Voxel] {
	return func(yield func(Voxel) bool) {
		for z := r.min[2]; z <= r.max[2]; z++ {
			for y := r.min[1]; y <= r.max[1]; y++ {
				for x := r.min[0]; x <= r.max[0]; x++ {
					v := Voxel{x, y, z}
					if r.Contains(v) && !yield(v) {
						return
					}
				}
			}
		}
	}
}

// First returns the first member voxel in iteration order.
func (r *Region) First() (Voxel, bool) {
	for v := range r.Voxels() {
		return v, true
	}
	return Voxel{}, false
}

// Size counts the member voxels.
func (r *Region) Size() int64 {
	var n int64
	for range r.Voxels() {
		n++
	}
	return n
}

// Mask evaluates every candidate voxel using up to workers goroutines and
// returns the members in the same order as Voxels. The first
// classification error cancels the remaining work.
func (r *Region) Mask(ctx context.Context, workers int) ([]Voxel, error) {
	planes := make([][]Voxel, r.max[2]-r.min[2]+1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for i := range planes {
		z := r.min[2] + int64(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var out []Voxel
			for y := r.min[1]; y <= r.max[1]; y++ {
				for x := r.min[0]; x <= r.max[0]; x++ {
					v := Voxel{x, y, z}
					in, err := r.classify(v)
					if err != nil {
						return err
					}
					if in {
						out = append(out, v)
					}
				}
			}
			planes[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var n int
	for _, p := range planes {
		n += len(p)
	}
	mask := make([]Voxel, 0, n)
	for _, p := range planes {
		mask = append(mask, p...)
	}
	return mask, nil
}

// Paint writes value into every member voxel of g and returns how many
// voxels were written.
func (r *Region) Paint(g grid.Grid, value float32) (int64, error) {
	return PaintVoxels(g, r.membersOrErr(), value)
}

// membersOrErr yields member voxels and stops after the first
// classification error.
func (r *Region) membersOrErr() iter.Seq2[Voxel, error] {
	return func(yield func(Voxel, error) bool) {
		for z := r.min[2]; z <= r.max[2]; z++ {
			for y := r.min[1]; y <= r.max[1]; y++ {
				for x := r.min[0]; x <= r.max[0]; x++ {
					v := Voxel{x, y, z}
					in, err := r.classify(v)
					if err != nil {
						yield(v, err)
						return
					}
					if in && !yield(v, nil) {
						return
					}
				}
			}
		}
	}
}

// PaintVoxels writes value at every voxel of seq, stopping at the first
// error.
func PaintVoxels(g grid.Grid, seq iter.Seq2[Voxel, error], value float32) (int64, error) {
	var n int64
	for v, err := range seq {
		if err != nil {
			return n, err
		}
		if err := g.Set(v, value); err != nil {
			return n, fmt.Errorf("voxel: painting %v: %w", v, err)
		}
		n++
	}
	return n, nil
}

// Slice adapts an evaluated mask for PaintVoxels.
func Slice(mask []Voxel) iter.Seq2[Voxel, error] {
	return func(yield func(Voxel, error) bool) {
		for _, v := range mask {
			if !yield(v, nil) {
				return
			}
		}
	}
}
