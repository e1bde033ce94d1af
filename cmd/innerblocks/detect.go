package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDetectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE...",
		Short: "Report whether each template contains a placeholder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.newRenderer()
			if err != nil {
				return err
			}
			detector := renderer.Detector()
			for _, path := range args {
				answer := "no"
				if detector.HasInFile(path) {
					answer = "yes"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, answer)
			}
			return nil
		},
	}
}
