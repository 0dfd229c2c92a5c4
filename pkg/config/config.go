// Package config provides starconvex configuration read from a YAML file
// and validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents runtime configuration shared by the CLI commands.
type Config struct {
	LoggingLevel string `yaml:"logging_level"`

	// Workers bounds parallel mask evaluation.
	Workers int `yaml:"workers"`

	// Rays is the ray count used by script helpers that generate distances.
	Rays int `yaml:"rays"`

	Grid GridConfig `yaml:"grid"`
	Mesh MeshConfig `yaml:"mesh"`
}

// GridConfig describes the in-memory label volume.
type GridConfig struct {
	Dims       [3]int64   `yaml:"dims"`
	Spacing    [3]float64 `yaml:"spacing"`
	Origin     [3]float64 `yaml:"origin"`
	Timepoints int        `yaml:"timepoints"`
	Levels     int        `yaml:"levels"`
	Timepoint  int        `yaml:"timepoint"`
	Level      int        `yaml:"level"`
}

// MeshConfig controls surface extraction.
type MeshConfig struct {
	Cells int `yaml:"cells"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LoggingLevel: "info",
		Workers:      4,
		Rays:         96,
		Grid: GridConfig{
			Dims:       [3]int64{128, 128, 128},
			Spacing:    [3]float64{1, 1, 1},
			Timepoints: 1,
			Levels:     1,
		},
		Mesh: MeshConfig{Cells: 64},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	conf := Default()
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("config: %s: %w", path, err)
	}
	conf.LoggingLevel = strings.ToLower(conf.LoggingLevel)
	return conf, nil
}

var availableLoggingLevels = []string{"panic", "fatal", "error", "warn", "info", "debug"}
var availableLoggingLevelsString = strings.Join(availableLoggingLevels, ", ")

func validateLoggingLevel(loggingLevel string) bool {
	for _, l := range availableLoggingLevels {
		if l == loggingLevel {
			return true
		}
	}
	return false
}

type checkFunc func(conf *Config) error

// Validate reports every invalid field.
func (conf *Config) Validate() error {
	checkFuncs := []checkFunc{
		checkLoggingLevel,
		checkWorkers,
		checkRays,
		checkGrid,
		checkMesh,
	}

	var errs []error
	for _, check := range checkFuncs {
		if err := check(conf); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func checkLoggingLevel(conf *Config) error {
	if !validateLoggingLevel(conf.LoggingLevel) {
		return fmt.Errorf("invalid logging level %q, one of: %s", conf.LoggingLevel, availableLoggingLevelsString)
	}
	return nil
}

func checkWorkers(conf *Config) error {
	if conf.Workers < 1 {
		return fmt.Errorf("invalid workers %d, need at least 1", conf.Workers)
	}
	return nil
}

func checkRays(conf *Config) error {
	if conf.Rays < 4 {
		return fmt.Errorf("invalid rays %d, need at least 4", conf.Rays)
	}
	return nil
}

func checkGrid(conf *Config) error {
	g := conf.Grid
	for d := range 3 {
		if g.Dims[d] < 1 {
			return fmt.Errorf("invalid grid dims %v", g.Dims)
		}
		if !(g.Spacing[d] > 0) {
			return fmt.Errorf("invalid grid spacing %v", g.Spacing)
		}
	}
	if g.Timepoints < 1 || g.Levels < 1 {
		return fmt.Errorf("invalid grid timepoints/levels %d/%d", g.Timepoints, g.Levels)
	}
	return nil
}

func checkMesh(conf *Config) error {
	if conf.Mesh.Cells < 8 {
		return fmt.Errorf("invalid mesh cells %d, need at least 8", conf.Mesh.Cells)
	}
	return nil
}
