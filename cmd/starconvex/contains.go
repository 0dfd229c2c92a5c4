package main

import (
	"fmt"
	"os"
	"strconv"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/spf13/cobra"

	"github.com/chazu/starconvex/internal/app"
)

var containsCmd = &cobra.Command{
	Use:   "contains [script] [x] [y] [z]",
	Short: "List the detections containing a point",
	Long:  "Evaluate a detection script and print the name and label of every detection whose shape contains the world-space point (x, y, z).",
	Args:  cobra.ExactArgs(4),
	Run:   runContains,
}

func init() {
	rootCmd.AddCommand(containsCmd)
}

func runContains(cmd *cobra.Command, args []string) {
	var xyz [3]float64
	for i, s := range args[1:] {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing coordinate %q: %v\n", s, err)
			os.Exit(1)
		}
		xyz[i] = f
	}

	a := newApp()
	sc := loadScene(a, args[0])

	dets, err := app.Containing(sc, v3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(dets) == 0 {
		fmt.Println("no detection contains the point")
		return
	}
	for _, d := range dets {
		fmt.Printf("%s\tlabel %d\n", d.Name, d.Label)
	}
}
