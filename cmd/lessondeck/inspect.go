package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/lessondeck/internal/adapters/secondary/pptx"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file.pptx]",
	Short: "Print the text of each slide in a deck",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	slides, err := pptx.SlideTexts(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	for i, texts := range slides {
		fmt.Fprintf(out, "Slide %d\n", i+1)
		for _, text := range texts {
			for _, line := range strings.Split(text, "\n") {
				fmt.Fprintf(out, "  %s\n", line)
			}
		}
	}
	return nil
}
