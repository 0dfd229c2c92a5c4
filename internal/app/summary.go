package app

import (
	"github.com/chazu/starconvex/pkg/scene"
)

// Summary describes one detection for reporting.
type Summary struct {
	Name        string     `yaml:"name"`
	Label       int        `yaml:"label"`
	Rays        int        `yaml:"rays"`
	Center      [3]float64 `yaml:"center,flow"`
	MinDistance float64    `yaml:"min_distance"`
	MaxDistance float64    `yaml:"max_distance"`
	BoundsMin   [3]float64 `yaml:"bounds_min,flow"`
	BoundsMax   [3]float64 `yaml:"bounds_max,flow"`
}

// Summarize describes every detection of sc in scene order.
func Summarize(sc *scene.Scene) ([]Summary, error) {
	out := make([]Summary, 0, sc.Len())
	for _, d := range sc.List() {
		s, err := d.Shape()
		if err != nil {
			return nil, err
		}
		c, bb := s.Center(), s.BoundingBox()
		out = append(out, Summary{
			Name:        d.Name,
			Label:       d.Label,
			Rays:        s.Len(),
			Center:      [3]float64{c.X, c.Y, c.Z},
			MinDistance: s.MinDistance(),
			MaxDistance: s.MaxDistance(),
			BoundsMin:   [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z},
			BoundsMax:   [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z},
		})
	}
	return out, nil
}
