package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nativeblocks/innerblocks/blocktree"
	"github.com/nativeblocks/innerblocks/render"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	editor        bool
	innerPath     string
	allowedBlocks []string
	templateLock  bool
	selector      string
	minify        bool
	jsonResponse  bool
}

// editorOutput is the JSON printed for --editor. Preview is the tree
// serialized back to HTML with regions as empty mount points.
type editorOutput struct {
	render.Output
	Preview string `json:"preview,omitempty"`
}

func newRenderCmd(opts *rootOptions) *cobra.Command {
	ro := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a template for the frontend, or as an editor tree with --editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.newRenderer()
			if err != nil {
				return err
			}
			blockOpts := ro.blockOptions(cmd)

			inner := ""
			if ro.innerPath != "" {
				data, err := os.ReadFile(ro.innerPath)
				if err != nil {
					return fmt.Errorf("failed to read inner content: %w", err)
				}
				inner = string(data)
			}

			ctx := cmd.Context()
			if ro.editor {
				ctx = render.WithPreview(ctx)
			}

			var out render.Output
			if ro.jsonResponse {
				markup, err := readRenderResponse(args[0])
				if err != nil {
					return err
				}
				out, err = renderer.Render(ctx, markup, inner, blockOpts)
				if err != nil {
					return err
				}
			} else {
				out, err = renderer.RenderFile(ctx, args[0], inner, blockOpts)
				if err != nil {
					return err
				}
			}

			if !ro.editor {
				html := out.HTML
				if ro.minify {
					html = minifyHTML(html)
				}
				fmt.Fprint(cmd.OutOrStdout(), html)
				return nil
			}
			return ro.writeEditorOutput(cmd, out)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&ro.editor, "editor", false, "Render as an editor preview tree (JSON)")
	flags.StringVar(&ro.innerPath, "inner", "", "File with the nested-block markup for frontend rendering")
	flags.StringSliceVar(&ro.allowedBlocks, "allowed-blocks", nil, "Block names allowed in the region (namespace/name)")
	flags.BoolVar(&ro.templateLock, "template-lock", false, "Lock the region template")
	flags.StringVar(&ro.selector, "selector", "", "CSS selector locating the wrapper element")
	flags.BoolVar(&ro.minify, "minify", false, "Minify HTML output")
	flags.BoolVar(&ro.jsonResponse, "json-response", false, `Read FILE as a render endpoint body {"rendered": "..."}`)
	return cmd
}

// blockOptions maps flags to options; flags left unset do not override the
// config defaults.
func (ro *renderOptions) blockOptions(cmd *cobra.Command) blocktree.Options {
	var opts blocktree.Options
	if cmd.Flags().Changed("allowed-blocks") {
		opts.AllowedBlocks = append([]string{}, ro.allowedBlocks...)
	}
	if cmd.Flags().Changed("template-lock") {
		opts.TemplateLock = blocktree.Bool(ro.templateLock)
	}
	opts.WrapperSelector = ro.selector
	return opts
}

func (ro *renderOptions) writeEditorOutput(cmd *cobra.Command, out render.Output) error {
	result := editorOutput{Output: out}
	if out.Tree != nil {
		preview, err := blocktree.Render(out.Tree)
		if err != nil {
			return fmt.Errorf("failed to render preview: %w", err)
		}
		if ro.minify {
			preview = minifyHTML(preview)
		}
		result.Preview = preview
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}

func readRenderResponse(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open render response: %w", err)
	}
	defer f.Close()
	return render.DecodeRenderResponse(f)
}
