// Package render decides, per request, whether a template is being rendered
// for the public site or for the editor preview, and produces the matching
// output: substituted HTML or a cached element tree.
package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/nativeblocks/innerblocks/blockcache"
	"github.com/nativeblocks/innerblocks/blocktree"
	"github.com/nativeblocks/innerblocks/placeholder"
)

// Output is the result of one render.
type Output struct {
	Mode Mode `json:"mode"`
	// HTML is the substituted markup in publish-time mode, or the raw markup
	// when the tree could not be rebuilt.
	HTML string          `json:"html,omitempty"`
	Tree *blocktree.Node `json:"tree,omitempty"`
	// Verbatim is set when the design-time tree was unavailable and HTML
	// holds the markup to inject as-is.
	Verbatim bool                `json:"verbatim,omitempty"`
	Warnings []blocktree.Warning `json:"warnings,omitempty"`
}

// Renderer glues the detector, the tree rebuilder and the render cache.
type Renderer struct {
	config   Config
	detector *placeholder.Detector
	builder  *blocktree.Builder
	cache    *blockcache.Cache
	logger   *slog.Logger
}

// New creates a Renderer with the given config.
func New(config Config) (*Renderer, error) {
	cfg := config.clone().applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	detector, err := placeholder.New(cfg.placeholderConfig())
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		config:   cfg,
		detector: detector,
		builder:  blocktree.NewWithDetector(detector),
		logger:   cfg.Logger,
	}
	if !cfg.DisableCache {
		r.cache = blockcache.New(r.builder, cfg.CacheCapacity)
	}
	return r, nil
}

// Detector returns the detector used for both render modes.
func (r *Renderer) Detector() *placeholder.Detector {
	return r.detector
}

// Render produces the output for markup in the mode resolved from ctx.
// innerContent is only used in publish-time mode, and opts only in
// design-time mode, where invalid entries are dropped with a warning.
func (r *Renderer) Render(ctx context.Context, markup, innerContent string, opts blocktree.Options) (Output, error) {
	mode := ResolveMode(ctx)
	if mode == PublishTime {
		return Output{Mode: mode, HTML: r.detector.Substitute(markup, innerContent)}, nil
	}

	merged, dropped := r.config.Defaults.Merge(opts).Sanitize()
	for _, warning := range dropped {
		r.logger.Warn("render option dropped", "option", warning.NodeType, "message", warning.Message)
	}
	out := r.renderEditor(markup, merged)
	if len(dropped) > 0 {
		out.Warnings = append(append([]blocktree.Warning{}, dropped...), out.Warnings...)
	}
	return out, nil
}

func (r *Renderer) renderEditor(markup string, opts blocktree.Options) Output {
	var result blocktree.Result
	if r.cache != nil {
		result = r.cache.GetOrBuild(markup, opts)
	} else {
		result = r.builder.Build(markup, opts)
	}

	for _, warning := range result.Warnings {
		r.logger.Debug("tree rebuild warning",
			"type", warning.Type,
			"node", warning.NodeType,
			"message", warning.Message)
	}

	out := Output{Mode: DesignTime, Tree: result.Root, Warnings: result.Warnings}
	if result.Root == nil {
		if r.detector.Has(markup) {
			r.logger.Warn("falling back to verbatim markup", "warnings", len(result.Warnings))
		}
		out.Verbatim = true
		out.HTML = markup
	}
	return out
}

// RenderFile renders the template at path. A missing file yields an empty
// Output and no error.
func (r *Renderer) RenderFile(ctx context.Context, path, innerContent string, opts blocktree.Options) (Output, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("template not found", "path", path)
			return Output{Mode: ResolveMode(ctx)}, nil
		}
		return Output{}, fmt.Errorf("failed to read template: %w", err)
	}
	return r.Render(ctx, string(data), innerContent, opts)
}

// CacheStats returns the render cache counters; zero when caching is disabled.
func (r *Renderer) CacheStats() blockcache.Stats {
	if r.cache == nil {
		return blockcache.Stats{}
	}
	return r.cache.Stats()
}
