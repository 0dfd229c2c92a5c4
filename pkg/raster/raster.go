// Package raster paints the detections of a scene into label grids. Each
// detection is sampled into a voxel region, member voxels are evaluated in
// parallel, and labels are written in scene order so later detections win
// where objects overlap.
package raster

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/chazu/starconvex/pkg/config"
	"github.com/chazu/starconvex/pkg/grid"
	"github.com/chazu/starconvex/pkg/scene"
	"github.com/chazu/starconvex/pkg/voxel"
)

// Entry reports how one detection was rasterized.
type Entry struct {
	Name       string      `json:"name" yaml:"name"`
	Label      int         `json:"label" yaml:"label"`
	Min        voxel.Voxel `json:"min" yaml:"min"`
	Max        voxel.Voxel `json:"max" yaml:"max"`
	Candidates int64       `json:"candidates" yaml:"candidates"`
	Members    int64       `json:"members" yaml:"members"`
	Degenerate bool        `json:"degenerate,omitempty" yaml:"degenerate,omitempty"`
}

// Report summarizes one Rasterize call.
type Report struct {
	Timepoint int     `json:"timepoint" yaml:"timepoint"`
	Level     int     `json:"level" yaml:"level"`
	Entries   []Entry `json:"entries" yaml:"entries"`
	Painted   int64   `json:"painted" yaml:"painted"`
}

// Rasterizer paints scenes into the grids of a provider.
type Rasterizer struct {
	provider grid.Provider
	sampler  *voxel.Sampler
	workers  int
	log      *logrus.Entry
}

// New returns a rasterizer that samples and paints against p using up to
// workers goroutines. Sampler options are passed through.
func New(p grid.Provider, workers int, opts ...voxel.Option) *Rasterizer {
	return &Rasterizer{
		provider: p,
		sampler:  voxel.NewSampler(p, opts...),
		workers:  max(1, workers),
		log:      config.NamedLogger("raster"),
	}
}

// Rasterize writes the label of every detection of sc into the grid of
// timepoint and level. Regions that miss the grid are reported as
// degenerate and not painted.
func (r *Rasterizer) Rasterize(ctx context.Context, sc *scene.Scene, timepoint, level int) (*Report, error) {
	dets := sc.List()
	g, err := r.provider.Grid(timepoint, level)
	if err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}

	regions := make([]*voxel.Region, len(dets))
	for i, d := range dets {
		s, err := d.Shape()
		if err != nil {
			return nil, fmt.Errorf("raster: %w", err)
		}
		if regions[i], err = r.sampler.Sample(s, timepoint, level); err != nil {
			return nil, fmt.Errorf("raster: detection %q: %w", d.Name, err)
		}
	}

	masks := make([][]voxel.Voxel, len(dets))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)
	for i, reg := range regions {
		if reg.Degenerate() {
			continue
		}
		eg.Go(func() error {
			m, err := reg.Mask(ctx, 1)
			if err != nil {
				return fmt.Errorf("raster: detection %q: %w", dets[i].Name, err)
			}
			masks[i] = m
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Timepoint: timepoint, Level: level, Entries: make([]Entry, len(dets))}
	for i, d := range dets {
		reg := regions[i]
		e := Entry{
			Name:       d.Name,
			Label:      d.Label,
			Min:        reg.Min(),
			Max:        reg.Max(),
			Candidates: reg.IntervalSize(),
			Degenerate: reg.Degenerate(),
		}
		if e.Degenerate {
			r.log.WithField("detection", d.Name).Warn("detection misses the grid")
		} else {
			n, err := voxel.PaintVoxels(g, voxel.Slice(masks[i]), float32(d.Label))
			if err != nil {
				return nil, fmt.Errorf("raster: detection %q: %w", d.Name, err)
			}
			e.Members = n
			rep.Painted += n
		}
		rep.Entries[i] = e
	}

	r.log.WithFields(logrus.Fields{
		"timepoint":  timepoint,
		"level":      level,
		"detections": len(dets),
		"painted":    rep.Painted,
	}).Info("rasterized scene")
	return rep, nil
}
