// Package sdfx implements kernel.Mesher using the github.com/deadsy/sdfx
// SDF library. A shape is exposed to sdfx as a signed distance field built
// from its local facet planes and meshed with marching cubes.
package sdfx

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/starconvex/pkg/kernel"
	"github.com/chazu/starconvex/pkg/shape"
)

// Compile-time interface checks.
var (
	_ kernel.Mesher = (*SdfxKernel)(nil)
	_ sdf.SDF3      = (*shapeSDF)(nil)
)

// DefaultMeshCells controls marching cubes resolution along the longest
// bounding box axis.
const DefaultMeshCells = 64

// boundsPadding enlarges the meshing volume so the surface never touches
// its faces.
const boundsPadding = 0.05

// ErrEmptyMesh is returned when marching cubes finds no surface.
var ErrEmptyMesh = errors.New("sdfx: empty mesh")

// shapeSDF adapts a shape to sdf.SDF3.
type shapeSDF struct {
	s  *shape.Shape
	bb sdf.Box3
}

// Evaluate returns the signed local facet distance, negative inside.
func (f *shapeSDF) Evaluate(p v3.Vec) float64 {
	return f.s.SignedDistance(p)
}

// BoundingBox returns the padded shape box.
func (f *shapeSDF) BoundingBox() sdf.Box3 {
	return f.bb
}

// wrap creates an sdf.SDF3 from a shape.
func wrap(s *shape.Shape) sdf.SDF3 {
	return &shapeSDF{s: s, bb: s.BoundingBox().Enlarge(boundsPadding).Box3()}
}

// SdfxKernel meshes shapes with sdfx marching cubes.
type SdfxKernel struct {
	cells int
}

// New returns a kernel using cells marching cubes cells along the longest
// axis. A non-positive value selects DefaultMeshCells.
func New(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// ToMesh converts a shape to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s *shape.Shape) (*kernel.Mesh, error) {
	renderer := render.NewMarchingCubesUniform(k.cells)
	triangles := render.ToTriangles(wrap(s), renderer)
	if len(triangles) == 0 {
		return nil, fmt.Errorf("%w at %d cells", ErrEmptyMesh, k.cells)
	}

	return kernel.FromTriangles(triangles), nil
}
