package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chazu/starconvex/internal/app"
	"github.com/chazu/starconvex/pkg/config"
	"github.com/chazu/starconvex/pkg/scene"
)

var (
	configPath   string
	loggingLevel string
)

var rootCmd = &cobra.Command{
	Use:   "starconvex",
	Short: "Inspect, mesh and rasterize star-convex detections",
	Long: `starconvex evaluates detection scripts describing star-convex objects
(a center plus one distance per Fibonacci lattice direction) and turns them
into point queries, STL surfaces or label volumes.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&loggingLevel, "logging-level", "", "override the configured logging level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp loads and validates the configuration or exits.
func newApp() *app.App {
	conf, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if loggingLevel != "" {
		conf.LoggingLevel = loggingLevel
	}
	if err := conf.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.SetLoggingLevel(conf.LoggingLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return app.New(conf)
}

// loadScene evaluates a script, printing warnings, or exits on errors.
func loadScene(a *app.App, path string) *scene.Scene {
	result, err := a.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
		os.Exit(1)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.Message)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, e)
		}
		os.Exit(1)
	}
	return result.Scene
}

// printYAML writes v to stdout or exits.
func printYAML(v any) {
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
		os.Exit(1)
	}
	enc.Close()
}
