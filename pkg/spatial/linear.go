package spatial

import (
	"slices"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ Index = (*Linear)(nil)

// Linear scans every point on each query.
type Linear struct {
	points []v3.Vec
}

// NewLinear indexes points. The slice is copied.
func NewLinear(points []v3.Vec) *Linear {
	return &Linear{points: slices.Clone(points)}
}

// Nearest implements Index. Ties are broken by build order.
func (l *Linear) Nearest(q v3.Vec, k int) []int {
	if k <= 0 || len(l.points) == 0 {
		return nil
	}
	k = min(k, len(l.points))

	type cand struct {
		idx  int
		dist float64
	}
	best := make([]cand, 0, k+1)
	for i, p := range l.points {
		d := p.Sub(q)
		dist := d.Dot(d)
		if len(best) == k && dist >= best[k-1].dist {
			continue
		}
		pos, _ := slices.BinarySearchFunc(best, dist, func(c cand, t float64) int {
			if c.dist <= t {
				return -1
			}
			return 1
		})
		best = slices.Insert(best, pos, cand{idx: i, dist: dist})
		if len(best) > k {
			best = best[:k]
		}
	}

	out := make([]int, len(best))
	for i, c := range best {
		out[i] = c.idx
	}
	return out
}

// Len implements Index.
func (l *Linear) Len() int {
	return len(l.points)
}
