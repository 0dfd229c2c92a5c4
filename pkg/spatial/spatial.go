// Package spatial provides static nearest-neighbour indexes over a fixed
// set of 3D points. The shape kernel uses them to find the lattice
// directions closest to a query direction.
//
// Two implementations are provided: RTree, backed by rtreego, and Linear,
// a brute-force scan used as a reference and for very small point sets.
// Both return identical neighbour sets for the same input.
package spatial

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Index answers k-nearest-neighbour queries over the point set it was
// built from. Implementations are immutable after construction and safe
// for concurrent readers.
type Index interface {
	// Nearest returns the indices (into the build set) of the k points
	// closest to q, nearest first. Fewer than k are returned only when
	// the index holds fewer than k points.
	Nearest(q v3.Vec, k int) []int

	// Len returns the number of indexed points.
	Len() int
}

// Builder constructs an Index from a point set.
type Builder func(points []v3.Vec) Index

// DefaultBuilder builds an R-tree index.
func DefaultBuilder(points []v3.Vec) Index {
	return NewRTree(points)
}

// LinearBuilder builds a brute-force index.
func LinearBuilder(points []v3.Vec) Index {
	return NewLinear(points)
}
