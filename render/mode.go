package render

import "context"

// Mode is the render context deciding which substitution strategy runs.
type Mode int

const (
	// PublishTime renders for the public site: sentinels become nested-block markup.
	PublishTime Mode = iota
	// DesignTime renders for the editor preview: sentinels become nested-editing regions.
	DesignTime
)

func (m Mode) String() string {
	switch m {
	case DesignTime:
		return "design-time"
	case PublishTime:
		return "publish-time"
	default:
		return "unknown"
	}
}

type previewKey struct{}

// WithPreview marks ctx as a server-render-preview request, as issued by the
// editor's live-preview machinery.
func WithPreview(ctx context.Context) context.Context {
	return context.WithValue(ctx, previewKey{}, true)
}

// IsPreview reports whether ctx was marked with WithPreview.
func IsPreview(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	preview, _ := ctx.Value(previewKey{}).(bool)
	return preview
}

// ResolveMode returns DesignTime for preview requests and PublishTime otherwise.
func ResolveMode(ctx context.Context) Mode {
	if IsPreview(ctx) {
		return DesignTime
	}
	return PublishTime
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
