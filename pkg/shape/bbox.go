package shape

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BoundingBox is an axis-aligned box. Containment is inclusive on every
// face, so the corners themselves are inside.
type BoundingBox struct {
	Min v3.Vec
	Max v3.Vec
}

// NewBoundingBox returns the smallest box holding every point. With no
// points the box is inverted (Min > Max) and contains nothing.
func NewBoundingBox(points ...v3.Vec) BoundingBox {
	b := BoundingBox{
		Min: v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	for _, p := range points {
		b = b.Include(p)
	}
	return b
}

// Include returns the box grown to hold p.
func (b BoundingBox) Include(p v3.Vec) BoundingBox {
	return BoundingBox{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Contains reports whether p lies inside or on the box.
func (b BoundingBox) Contains(p v3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Empty reports whether the box is inverted on any axis.
func (b BoundingBox) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Size returns the edge lengths.
func (b BoundingBox) Size() v3.Vec {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() v3.Vec {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// Corners returns the eight corners, x varying fastest.
func (b BoundingBox) Corners() [8]v3.Vec {
	var c [8]v3.Vec
	for i := range c {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		c[i] = p
	}
	return c
}

// Transform returns the axis-aligned box around the image of all eight
// corners under m.
func (b BoundingBox) Transform(m sdf.M44) BoundingBox {
	out := NewBoundingBox()
	for _, c := range b.Corners() {
		out = out.Include(m.MulPosition(c))
	}
	return out
}

// Enlarge pads each axis by frac of its size on both sides.
func (b BoundingBox) Enlarge(frac float64) BoundingBox {
	pad := b.Size().MulScalar(frac)
	return BoundingBox{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Box3 converts to the sdfx box type.
func (b BoundingBox) Box3() sdf.Box3 {
	return sdf.Box3{Min: b.Min, Max: b.Max}
}
