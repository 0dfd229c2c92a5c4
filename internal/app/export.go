package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chazu/starconvex/pkg/kernel"
)

// STLPath returns the file for mesh name inside dir. Names must be a single
// path element so a script cannot write outside dir.
func STLPath(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || filepath.IsAbs(name) {
		return "", fmt.Errorf("app: mesh name %q is not a plain file name", name)
	}
	return filepath.Join(dir, name+".stl"), nil
}

// WriteMeshes saves every mesh as dir/<name>.stl and returns the paths in
// mesh order. Names are checked before anything is written.
func (a *App) WriteMeshes(dir string, meshes []*kernel.Mesh) ([]string, error) {
	paths := make([]string, len(meshes))
	for i, m := range meshes {
		path, err := STLPath(dir, m.Name)
		if err != nil {
			return nil, err
		}
		paths[i] = path
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	for i, m := range meshes {
		if err := m.SaveSTL(paths[i]); err != nil {
			return nil, err
		}
		a.log.WithField("path", paths[i]).Debug("wrote mesh")
	}
	return paths, nil
}
