package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/starconvex/internal/app"
)

var infoCmd = &cobra.Command{
	Use:   "info [script]",
	Short: "Describe the detections of a script",
	Long:  "Evaluate a detection script and print the center, ray statistics and bounding box of every detection.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	a := newApp()
	sc := loadScene(a, args[0])

	summaries, err := app.Summarize(sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	printYAML(map[string]any{
		"script":     args[0],
		"detections": summaries,
	})
}
