package kernel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deadsy/sdfx/render"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/starconvex/pkg/shape"
)

// quad is two triangles sharing an edge in the z=0 plane.
func quad() *Mesh {
	return &Mesh{
		Vertices: []float32{0, 0, 0, 2, 0, 0, 2, 3, 0, 0, 3, 0},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2, 2, 3, 0},
		Name:     "quad",
		Label:    4,
	}
}

func TestMeshCounts(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		verts     int
		triangles int
		empty     bool
	}{
		{"empty", &Mesh{}, 0, 0, true},
		{"one vertex", &Mesh{Vertices: []float32{1, 2, 3}}, 1, 0, false},
		{"quad", quad(), 4, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mesh.VertexCount(); got != tt.verts {
				t.Errorf("VertexCount() = %d, want %d", got, tt.verts)
			}
			if got := tt.mesh.TriangleCount(); got != tt.triangles {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.triangles)
			}
			if got := tt.mesh.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
		})
	}
}

func TestMeshBounds(t *testing.T) {
	min, max := quad().Bounds()
	if min != [3]float32{0, 0, 0} {
		t.Errorf("Bounds min = %v, want [0 0 0]", min)
	}
	if max != [3]float32{2, 3, 0} {
		t.Errorf("Bounds max = %v, want [2 3 0]", max)
	}

	min, max = (&Mesh{}).Bounds()
	if min[0] <= max[0] {
		t.Errorf("empty mesh bounds should be inverted, got %v %v", min, max)
	}
}

func TestTrianglesRoundTrip(t *testing.T) {
	tris := quad().Triangles()
	if len(tris) != 2 {
		t.Fatalf("Triangles() returned %d, want 2", len(tris))
	}
	if got := tris[1][0]; got != (v3.Vec{X: 2, Y: 3}) {
		t.Errorf("triangle 1 corner 0 = %v, want (2,3,0)", got)
	}

	m := FromTriangles(tris)
	if m.TriangleCount() != 2 || m.VertexCount() != 6 {
		t.Fatalf("FromTriangles: %d triangles, %d vertices, want 2 and 6", m.TriangleCount(), m.VertexCount())
	}
	if n := m.Normals[0:3]; n[2] != 1 {
		t.Errorf("face normal = %v, want +z", n)
	}
}

func TestSaveSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.stl")
	if err := quad().SaveSTL(path); err != nil {
		t.Fatalf("SaveSTL() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	// 80-byte header, uint32 count, 50 bytes per facet.
	if want := int64(80 + 4 + 2*50); info.Size() != want {
		t.Fatalf("file size = %d, want %d", info.Size(), want)
	}

	tris, err := render.LoadSTL(path)
	if err != nil {
		t.Fatalf("LoadSTL() error = %v", err)
	}
	got := FromTriangles(tris)
	if got.TriangleCount() != 2 {
		t.Fatalf("TriangleCount() = %d, want 2", got.TriangleCount())
	}
	// The second facet starts at original vertex 2.
	if v := got.Vertices[9:12]; v[0] != 2 || v[1] != 3 || v[2] != 0 {
		t.Errorf("facet 1 corner 0 = %v, want [2 3 0]", v)
	}
}

func TestSaveSTLBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "quad.stl")
	if err := quad().SaveSTL(path); err == nil {
		t.Fatal("expected error for a missing directory")
	}
}

// --- Compile-time interface check with a stub mesher ---

// stubMesher emits one triangle spanning the first three vertices.
type stubMesher struct{}

func (stubMesher) ToMesh(s *shape.Shape) (*Mesh, error) {
	m := &Mesh{Indices: []uint32{0, 1, 2}}
	for _, v := range s.Vertices()[:3] {
		m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
	}
	return m, nil
}

var _ Mesher = stubMesher{}

func TestStubMesher(t *testing.T) {
	s, err := shape.New(v3.Vec{}, []float64{1, 1, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("shape.New() error = %v", err)
	}
	var k Mesher = stubMesher{}
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", m.TriangleCount())
	}
	// Normals are recomputed from the corners on export.
	if err := m.SaveSTL(filepath.Join(t.TempDir(), "stub.stl")); err != nil {
		t.Fatalf("SaveSTL() error = %v", err)
	}
}
