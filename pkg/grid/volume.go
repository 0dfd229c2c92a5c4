package grid

import (
	"fmt"

	"github.com/samber/lo"
)

// Compile-time interface check.
var _ Grid = (*Volume)(nil)

// Volume is a dense float32 grid stored x-fastest.
type Volume struct {
	dims [3]int64
	data []float32
}

// NewVolume allocates a zeroed grid. Every dimension must be positive.
func NewVolume(dims [3]int64) (*Volume, error) {
	for d, n := range dims {
		if n <= 0 {
			return nil, fmt.Errorf("grid: axis %d has size %d", d, n)
		}
	}
	return &Volume{dims: dims, data: make([]float32, dims[0]*dims[1]*dims[2])}, nil
}

// Dims returns the size of each axis.
func (v *Volume) Dims() [3]int64 { return v.dims }

// Max implements Grid.
func (v *Volume) Max() [3]int64 {
	return [3]int64{v.dims[0] - 1, v.dims[1] - 1, v.dims[2] - 1}
}

// InBounds reports whether p addresses a voxel of v.
func (v *Volume) InBounds(p [3]int64) bool {
	for d := range p {
		if p[d] < 0 || p[d] >= v.dims[d] {
			return false
		}
	}
	return true
}

func (v *Volume) offset(p [3]int64) int64 {
	return p[0] + v.dims[0]*(p[1]+v.dims[1]*p[2])
}

// At implements Grid.
func (v *Volume) At(p [3]int64) float32 {
	if !v.InBounds(p) {
		return 0
	}
	return v.data[v.offset(p)]
}

// Set implements Grid.
func (v *Volume) Set(p [3]int64, val float32) error {
	if !v.InBounds(p) {
		return fmt.Errorf("grid: %v outside %v: %w", p, v.dims, ErrOutOfBounds)
	}
	v.data[v.offset(p)] = val
	return nil
}

// Histogram counts voxels per value, zeros excluded.
func (v *Volume) Histogram() map[float32]int {
	h := lo.CountValues(v.data)
	delete(h, 0)
	return h
}
