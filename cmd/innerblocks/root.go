package main

import (
	"log/slog"

	"github.com/nativeblocks/innerblocks/render"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose    bool
	configPath string
	logger     *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "innerblocks",
		Short:         "Detect and substitute InnerBlocks placeholders in block templates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")

	cmd.AddCommand(
		newDetectCmd(opts),
		newScanCmd(opts),
		newRenderCmd(opts),
	)
	return cmd
}

// loadConfig returns the config from --config, or the zero config.
func (o *rootOptions) loadConfig() (render.Config, error) {
	var cfg render.Config
	if o.configPath != "" {
		loaded, err := render.LoadConfig(o.configPath)
		if err != nil {
			return render.Config{}, err
		}
		cfg = loaded
	}
	cfg.Logger = o.logger
	return cfg, nil
}

func (o *rootOptions) newRenderer() (*render.Renderer, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return render.New(cfg)
}
