package scene

import (
	"fmt"

	"github.com/chazu/starconvex/pkg/shape"
)

// Shapes builds the shape of every detection in scene order.
func Shapes(sc *Scene, opts ...shape.Option) ([]*shape.Shape, error) {
	out := make([]*shape.Shape, 0, sc.Len())
	for _, d := range sc.List() {
		s, err := d.Shape(opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Shape builds the shape of d.
func (d *Detection) Shape(opts ...shape.Option) (*shape.Shape, error) {
	s, err := shape.New(d.Center, d.Distances, opts...)
	if err != nil {
		return nil, fmt.Errorf("scene: detection %q: %w", d.Name, err)
	}
	return s, nil
}
