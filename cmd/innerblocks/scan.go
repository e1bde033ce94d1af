package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newScanCmd(opts *rootOptions) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "scan PATTERN",
		Short: "List templates matching a glob that contain a placeholder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.newRenderer()
			if err != nil {
				return err
			}
			detector := renderer.Detector()
			pattern := args[0]

			matches, err := detector.ScanTemplates(pattern)
			if err != nil {
				return err
			}
			printMatches(cmd.OutOrStdout(), matches)
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w, err := newTemplateWatcher(detector, pattern, opts.logger)
			if err != nil {
				return err
			}
			defer w.Close()
			return w.Run(ctx, func(matches []string) {
				fmt.Fprintln(cmd.OutOrStdout(), "---")
				printMatches(cmd.OutOrStdout(), matches)
			})
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-scan when templates change")
	return cmd
}

func printMatches(w io.Writer, matches []string) {
	for _, path := range matches {
		fmt.Fprintln(w, path)
	}
}
