package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "frametrack",
	Short: "Frame-to-frame object tracking toolkit",
	Long:  "frametrack reconstructs persistent object identities and motion state from per-frame detections and replays captured detection streams.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
