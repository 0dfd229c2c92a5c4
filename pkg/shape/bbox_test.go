package shape

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
)

func TestBoundingBoxContainsInclusive(t *testing.T) {
	b := NewBoundingBox(v3.Vec{X: -1, Y: 0, Z: 2}, v3.Vec{X: 3, Y: 4, Z: 5})

	tests := []struct {
		name string
		p    v3.Vec
		want bool
	}{
		{"min corner", b.Min, true},
		{"max corner", b.Max, true},
		{"face", v3.Vec{X: -1, Y: 2, Z: 3}, true},
		{"interior", v3.Vec{X: 1, Y: 1, Z: 3}, true},
		{"below x", v3.Vec{X: -1.0001, Y: 2, Z: 3}, false},
		{"above z", v3.Vec{X: 0, Y: 2, Z: 5.0001}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Contains(tt.p))
		})
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	b := NewBoundingBox()
	assert.True(t, b.Empty())
	assert.False(t, b.Contains(v3.Vec{}))

	b = b.Include(v3.Vec{X: 1, Y: 2, Z: 3})
	assert.False(t, b.Empty())
	assert.True(t, b.Contains(v3.Vec{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, v3.Vec{}, b.Size())
}

func TestBoundingBoxCorners(t *testing.T) {
	b := BoundingBox{Min: v3.Vec{}, Max: v3.Vec{X: 1, Y: 2, Z: 3}}
	c := b.Corners()
	assert.Equal(t, b.Min, c[0])
	assert.Equal(t, v3.Vec{X: 1}, c[1])
	assert.Equal(t, v3.Vec{Y: 2}, c[2])
	assert.Equal(t, v3.Vec{Z: 3}, c[4])
	assert.Equal(t, b.Max, c[7])
}

func TestBoundingBoxTransformUsesAllCorners(t *testing.T) {
	b := BoundingBox{Min: v3.Vec{}, Max: v3.Vec{X: 2, Y: 2, Z: 2}}
	// A quarter turn about z maps x onto y and y onto -x; taking only the
	// two stored corners would produce an inverted box.
	tb := b.Transform(sdf.RotateZ(math.Pi / 2))
	assert.InDelta(t, -2.0, tb.Min.X, 1e-9)
	assert.InDelta(t, 0.0, tb.Max.X, 1e-9)
	assert.InDelta(t, 0.0, tb.Min.Y, 1e-9)
	assert.InDelta(t, 2.0, tb.Max.Y, 1e-9)
	assert.False(t, tb.Empty())
}

func TestBoundingBoxEnlarge(t *testing.T) {
	b := BoundingBox{Min: v3.Vec{}, Max: v3.Vec{X: 10, Y: 20, Z: 30}}.Enlarge(0.1)
	const tol = 1e-12
	assert.InDelta(t, -1.0, b.Min.X, tol)
	assert.InDelta(t, -3.0, b.Min.Z, tol)
	assert.InDelta(t, 22.0, b.Max.Y, tol)
	assert.InDelta(t, 33.0, b.Max.Z, tol)
	assert.InDelta(t, 15.0, b.Center().Z, tol)
	assert.Equal(t, sdf.Box3{Min: b.Min, Max: b.Max}, b.Box3())
}
