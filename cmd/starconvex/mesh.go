package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var meshOutDir string

var meshCmd = &cobra.Command{
	Use:   "mesh [script]",
	Short: "Write one binary STL surface per detection",
	Long:  "Evaluate a detection script, extract the surface of every detection with marching cubes and write <name>.stl files.",
	Args:  cobra.ExactArgs(1),
	Run:   runMesh,
}

func init() {
	meshCmd.Flags().StringVarP(&meshOutDir, "out", "o", ".", "output directory")
	rootCmd.AddCommand(meshCmd)
}

func runMesh(cmd *cobra.Command, args []string) {
	a := newApp()
	sc := loadScene(a, args[0])

	meshes, err := a.Meshes(sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error meshing: %v\n", err)
		os.Exit(1)
	}
	paths, err := a.WriteMeshes(meshOutDir, meshes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for i, m := range meshes {
		min, max := m.Bounds()
		fmt.Printf("%s\t%d triangles\t%v..%v\t-> %s\n", m.Name, m.TriangleCount(), min, max, paths[i])
	}
}
