package spatial

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"
)

// Branching factors for the bulk-loaded tree.
const (
	minChildren = 4
	maxChildren = 16
)

// Compile-time interface check.
var _ Index = (*RTree)(nil)

// point is a degenerate rectangle carrying its position in the build set.
type point struct {
	idx  int
	rect rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (p *point) Bounds() rtreego.Rect {
	return p.rect
}

// RTree is a bulk-loaded R-tree over 3D points.
type RTree struct {
	tree *rtreego.Rtree
	n    int
}

// NewRTree indexes points. The tree is never modified after construction.
func NewRTree(points []v3.Vec) *RTree {
	objs := make([]rtreego.Spatial, len(points))
	for i, p := range points {
		objs[i] = &point{idx: i, rect: toPoint(p).ToRect(0)}
	}
	return &RTree{
		tree: rtreego.NewTree(3, minChildren, maxChildren, objs...),
		n:    len(points),
	}
}

// Nearest implements Index.
func (t *RTree) Nearest(q v3.Vec, k int) []int {
	if k <= 0 || t.n == 0 {
		return nil
	}
	found := t.tree.NearestNeighbors(k, toPoint(q))
	out := make([]int, 0, len(found))
	for _, s := range found {
		if p, ok := s.(*point); ok {
			out = append(out, p.idx)
		}
	}
	return out
}

// Len implements Index.
func (t *RTree) Len() int {
	return t.n
}

func toPoint(v v3.Vec) rtreego.Point {
	return rtreego.Point{v.X, v.Y, v.Z}
}
