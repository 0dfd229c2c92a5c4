// Package tessellate walks a scene and produces triangle meshes using a
// surface extraction kernel. One mesh is produced per detection.
package tessellate

import (
	"fmt"

	"github.com/chazu/starconvex/pkg/kernel"
	"github.com/chazu/starconvex/pkg/scene"
	"github.com/chazu/starconvex/pkg/shape"
)

// Tessellate meshes every detection of sc in scene order. Meshes carry the
// detection name and label. The scene is never mutated.
func Tessellate(sc *scene.Scene, m kernel.Mesher, opts ...shape.Option) ([]*kernel.Mesh, error) {
	if sc == nil {
		return nil, nil
	}

	meshes := make([]*kernel.Mesh, 0, sc.Len())
	for _, d := range sc.List() {
		mesh, err := tessellateDetection(d, m, opts)
		if err != nil {
			return nil, fmt.Errorf("tessellate: detection %s: %w", d.ID.Short(), err)
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// tessellateDetection builds the shape of d and extracts its surface.
func tessellateDetection(d *scene.Detection, m kernel.Mesher, opts []shape.Option) (*kernel.Mesh, error) {
	s, err := d.Shape(opts...)
	if err != nil {
		return nil, err
	}
	mesh, err := m.ToMesh(s)
	if err != nil {
		return nil, fmt.Errorf("ToMesh failed for %q: %w", d.Name, err)
	}

	// Prefer the detection name, fall back to the short ID.
	if d.Name != "" {
		mesh.Name = d.Name
	} else {
		mesh.Name = d.ID.Short()
	}
	mesh.Label = d.Label
	return mesh, nil
}
