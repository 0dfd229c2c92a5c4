package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	conf := Default()
	assert.NoError(t, conf.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starconvex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logging_level: DEBUG
workers: 2
grid:
  dims: [32, 16, 8]
  spacing: [0.5, 0.5, 2]
mesh:
  cells: 24
`), 0o644))

	conf, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", conf.LoggingLevel)
	assert.Equal(t, 2, conf.Workers)
	assert.Equal(t, [3]int64{32, 16, 8}, conf.Grid.Dims)
	assert.Equal(t, [3]float64{0.5, 0.5, 2}, conf.Grid.Spacing)
	assert.Equal(t, 24, conf.Mesh.Cells)
	// Untouched keys keep their defaults.
	assert.Equal(t, 96, conf.Rays)
	assert.Equal(t, 1, conf.Grid.Levels)
	assert.NoError(t, conf.Validate())
}

func TestLoadExampleConfig(t *testing.T) {
	conf, err := Load(filepath.Join("..", "..", "examples", "starconvex.yaml"))
	require.NoError(t, err)
	assert.NoError(t, conf.Validate())
	assert.Equal(t, 4, conf.Workers)
	assert.Equal(t, [3]int64{64, 64, 64}, conf.Grid.Dims)
	assert.Equal(t, 48, conf.Mesh.Cells)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	conf, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"logging level", func(c *Config) { c.LoggingLevel = "verbose" }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"rays", func(c *Config) { c.Rays = 3 }},
		{"dims", func(c *Config) { c.Grid.Dims[1] = 0 }},
		{"spacing", func(c *Config) { c.Grid.Spacing[2] = -1 }},
		{"levels", func(c *Config) { c.Grid.Levels = 0 }},
		{"cells", func(c *Config) { c.Mesh.Cells = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Default()
			tt.mutate(&conf)
			assert.Error(t, conf.Validate())
		})
	}
}

func TestNamedLogger(t *testing.T) {
	log := NamedLogger("voxel")
	assert.Equal(t, "voxel", log.Data["pkg"])

	require.NoError(t, SetLoggingLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, log.Logger.GetLevel())
	require.NoError(t, SetLoggingLevel("info"))
	assert.Error(t, SetLoggingLevel("loud"))
}
