// Package kernel defines the surface extraction interface and the triangle
// mesh it produces. Implementations (sdfx) turn a star-convex shape into a
// mesh behind this interface so the rest of the system does not depend on
// a particular meshing backend.
package kernel

import "github.com/chazu/starconvex/pkg/shape"

// Mesher extracts a closed triangle surface from a shape.
type Mesher interface {
	// ToMesh returns the surface of s. The mesh has no name or label;
	// callers attach those.
	ToMesh(s *shape.Shape) (*Mesh, error)
}
