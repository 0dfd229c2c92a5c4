package kernel

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FromTriangles flattens sdfx triangles into an unindexed mesh: every
// triangle gets three fresh vertices carrying its face normal.
func FromTriangles(triangles []*sdf.Triangle3) *Mesh {
	numVerts := len(triangles) * 3

	m := &Mesh{
		Vertices: make([]float32, 0, numVerts*3),
		Normals:  make([]float32, 0, numVerts*3),
		Indices:  make([]uint32, 0, numVerts),
	}
	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}
	return m
}

// Triangles returns the mesh faces as sdfx triangles.
func (m *Mesh) Triangles() []*sdf.Triangle3 {
	out := make([]*sdf.Triangle3, m.TriangleCount())
	for t := range out {
		var tri sdf.Triangle3
		for j := range 3 {
			tri[j] = m.vertex(m.Indices[3*t+j])
		}
		out[t] = &tri
	}
	return out
}

// SaveSTL writes the mesh to path as binary STL.
func (m *Mesh) SaveSTL(path string) error {
	if err := render.SaveSTL(path, m.Triangles()); err != nil {
		return fmt.Errorf("stl: %s: %w", path, err)
	}
	return nil
}

// vertex returns vertex i.
func (m *Mesh) vertex(i uint32) v3.Vec {
	return v3.Vec{
		X: float64(m.Vertices[3*i]),
		Y: float64(m.Vertices[3*i+1]),
		Z: float64(m.Vertices[3*i+2]),
	}
}
