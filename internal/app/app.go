// Package app ties the detection pipeline together for the command line:
// script evaluation, scene validation, meshing and rasterization.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/sirupsen/logrus"

	"github.com/chazu/starconvex/pkg/config"
	"github.com/chazu/starconvex/pkg/engine"
	"github.com/chazu/starconvex/pkg/grid"
	"github.com/chazu/starconvex/pkg/kernel"
	"github.com/chazu/starconvex/pkg/kernel/sdfx"
	"github.com/chazu/starconvex/pkg/raster"
	"github.com/chazu/starconvex/pkg/scene"
	"github.com/chazu/starconvex/pkg/tessellate"
	"github.com/chazu/starconvex/pkg/voxel"
)

// App holds the configured pipeline stages.
type App struct {
	conf   config.Config
	engine *engine.Engine
	mesher kernel.Mesher
	log    *logrus.Entry
}

// New creates an App from a validated configuration.
func New(conf config.Config) *App {
	eng := engine.NewEngine()
	eng.Rays = conf.Rays
	return &App{
		conf:   conf,
		engine: eng,
		mesher: sdfx.New(conf.Mesh.Cells),
		log:    config.NamedLogger("app"),
	}
}

// Config returns the configuration the App was built with.
func (a *App) Config() config.Config { return a.conf }

// Load evaluates a detection script and validates the resulting scene.
// Scene is nil whenever Errors is not empty.
func (a *App) Load(source string) engine.EvalResult {
	var result engine.EvalResult

	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, superseded).
		a.log.WithError(err).Error("evaluation failed")
		result.Errors = append(result.Errors, engine.EvalError{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		result.Errors = evalErrs
		return result
	}

	v := scene.Validate(sc)
	for _, e := range v.Errors {
		result.Errors = append(result.Errors, engine.EvalError{Message: e.Error()})
	}
	for _, w := range v.Warnings {
		result.Warnings = append(result.Warnings, engine.EvalWarning{Message: w.Message, DetectionID: w.ID})
	}
	if len(result.Errors) > 0 {
		return result
	}

	result.Scene = sc
	a.log.WithFields(logrus.Fields{
		"detections": sc.Len(),
		"warnings":   len(result.Warnings),
	}).Debug("scene loaded")
	return result
}

// LoadFile reads and loads a detection script. Script problems are
// reported in the result; the error is only for unreadable files.
func (a *App) LoadFile(path string) (engine.EvalResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return engine.EvalResult{}, fmt.Errorf("app: %w", err)
	}
	return a.Load(string(source)), nil
}

// Meshes tessellates every detection of sc.
func (a *App) Meshes(sc *scene.Scene) ([]*kernel.Mesh, error) {
	return tessellate.Tessellate(sc, a.mesher)
}

// Pyramid allocates the label volume described by the grid configuration.
// Voxel i of level 0 sits at origin + spacing*i in world space.
func (a *App) Pyramid() (*grid.Pyramid, error) {
	g := a.conf.Grid
	base := sdf.Translate3d(v3.Vec{X: g.Origin[0], Y: g.Origin[1], Z: g.Origin[2]}).
		Mul(sdf.Scale3d(v3.Vec{X: g.Spacing[0], Y: g.Spacing[1], Z: g.Spacing[2]}))
	return grid.NewPyramid(g.Dims, base, g.Timepoints, g.Levels)
}

// Rasterize paints sc into the configured timepoint and level of p.
func (a *App) Rasterize(ctx context.Context, sc *scene.Scene, p grid.Provider) (*raster.Report, error) {
	progress := voxel.NewProgressLogger(config.NamedLogger("voxel"), voxel.DefaultProgressInterval)
	r := raster.New(p, a.conf.Workers, voxel.WithObserver(progress))
	return r.Rasterize(ctx, sc, a.conf.Grid.Timepoint, a.conf.Grid.Level)
}

// Containing returns the detections of sc whose shape contains p, in
// scene order.
func Containing(sc *scene.Scene, p v3.Vec) ([]*scene.Detection, error) {
	var out []*scene.Detection
	for _, d := range sc.List() {
		s, err := d.Shape()
		if err != nil {
			return nil, err
		}
		in, err := s.Classify(p)
		if err != nil {
			return nil, fmt.Errorf("app: detection %q: %w", d.Name, err)
		}
		if in {
			out = append(out, d)
		}
	}
	return out, nil
}
