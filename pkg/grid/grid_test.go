package grid

import (
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVolumeAccess(t *testing.T) {
	v, err := NewVolume([3]int64{4, 3, 2})
	require.NoError(t, err)
	assert.Equal(t, [3]int64{3, 2, 1}, v.Max())

	require.NoError(t, v.Set([3]int64{3, 2, 1}, 7))
	require.NoError(t, v.Set([3]int64{0, 1, 0}, 2))
	assert.Equal(t, float32(7), v.At([3]int64{3, 2, 1}))
	assert.Equal(t, float32(2), v.At([3]int64{0, 1, 0}))
	assert.Equal(t, float32(0), v.At([3]int64{1, 1, 0}))

	assert.ErrorIs(t, v.Set([3]int64{4, 0, 0}, 1), ErrOutOfBounds)
	assert.ErrorIs(t, v.Set([3]int64{0, -1, 0}, 1), ErrOutOfBounds)
	assert.Equal(t, float32(0), v.At([3]int64{-1, 0, 0}))

	assert.Equal(t, map[float32]int{7: 1, 2: 1}, v.Histogram())
}

func TestVolumeRejectsEmptyAxis(t *testing.T) {
	_, err := NewVolume([3]int64{4, 0, 2})
	assert.Error(t, err)
}

func TestPyramidLevels(t *testing.T) {
	p, err := NewPyramid([3]int64{100, 51, 9}, sdf.Identity3d(), 2, 3)
	require.NoError(t, err)

	assert.Equal(t, [3]int64{100, 51, 9}, p.Dims(0))
	assert.Equal(t, [3]int64{50, 26, 5}, p.Dims(1))
	assert.Equal(t, [3]int64{25, 13, 3}, p.Dims(2))

	g, err := p.Grid(1, 2)
	require.NoError(t, err)
	assert.Equal(t, [3]int64{24, 12, 2}, g.Max())

	again, err := p.Grid(1, 2)
	require.NoError(t, err)
	assert.Same(t, g, again)

	other, err := p.Grid(0, 2)
	require.NoError(t, err)
	assert.NotSame(t, g, other)
}

func TestPyramidTransform(t *testing.T) {
	base := sdf.Translate3d(v3.Vec{X: 10, Y: 20, Z: 30}).Mul(sdf.Scale3d(v3.Vec{X: 0.5, Y: 0.5, Z: 2}))
	p, err := NewPyramid([3]int64{8, 8, 8}, base, 1, 3)
	require.NoError(t, err)

	m, err := p.Transform(0, 2)
	require.NoError(t, err)
	w := m.MulPosition(v3.Vec{X: 1, Y: 1, Z: 1})
	assert.InDelta(t, 12.0, w.X, 1e-12)
	assert.InDelta(t, 22.0, w.Y, 1e-12)
	assert.InDelta(t, 38.0, w.Z, 1e-12)
}

func TestPyramidUnavailable(t *testing.T) {
	p, err := NewPyramid([3]int64{8, 8, 8}, sdf.Identity3d(), 1, 2)
	require.NoError(t, err)

	tests := []struct {
		name             string
		timepoint, level int
	}{
		{"level too high", 0, 2},
		{"negative level", 0, -1},
		{"timepoint too high", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Transform(tt.timepoint, tt.level)
			assert.ErrorIs(t, err, ErrUnavailable)
			_, err = p.Grid(tt.timepoint, tt.level)
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestPyramidRejectsSingularBase(t *testing.T) {
	_, err := NewPyramid([3]int64{8, 8, 8}, sdf.Scale3d(v3.Vec{X: 1, Y: 0, Z: 1}), 1, 1)
	assert.Error(t, err)
	_, err = NewPyramid([3]int64{8, 8, 8}, sdf.Identity3d(), 0, 1)
	assert.Error(t, err)
}
