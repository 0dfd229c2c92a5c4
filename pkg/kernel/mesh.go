package kernel

import "math"

// Mesh is a triangle mesh suitable for rendering or export.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // detection the surface came from
	Label    int       `json:"label"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Bounds returns the axis-aligned extent of the vertices. An empty mesh
// returns an inverted box.
func (m *Mesh) Bounds() (min, max [3]float32) {
	inf := float32(math.Inf(1))
	min = [3]float32{inf, inf, inf}
	max = [3]float32{-inf, -inf, -inf}
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		for d := range 3 {
			v := m.Vertices[i+d]
			if v < min[d] {
				min[d] = v
			}
			if v > max[d] {
				max[d] = v
			}
		}
	}
	return min, max
}
