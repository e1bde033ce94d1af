package blocktree

import (
	"fmt"
	"regexp"
)

// DefaultWrapperSelector matches any element whose class contains "wp-block-".
const DefaultWrapperSelector = `[class*="wp-block-"]`

var blockNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*/[a-z][a-z0-9-]*$`)

// Options configures the nested-editing region and wrapper lookup for one
// render. Nil fields are unset and never reach the region, so host defaults
// stay in effect. The cbor tags keep an empty list distinct from an unset one
// in cache keys.
type Options struct {
	AllowedBlocks   []string        `json:"allowedBlocks,omitempty" yaml:"allowedBlocks,omitempty" cbor:"allowedBlocks"`
	Template        []TemplateBlock `json:"template,omitempty" yaml:"template,omitempty" cbor:"template"`
	TemplateLock    *bool           `json:"templateLock,omitempty" yaml:"templateLock,omitempty" cbor:"templateLock"`
	WrapperSelector string          `json:"wrapperSelector,omitempty" yaml:"wrapperSelector,omitempty" cbor:"wrapperSelector"`
}

// Bool returns a pointer to v, for Options.TemplateLock.
func Bool(v bool) *bool {
	return &v
}

// WithDefaults returns a copy of o with unset defaults filled in.
func (o Options) WithDefaults() Options {
	cloned := o.clone()
	if cloned.WrapperSelector == "" {
		cloned.WrapperSelector = DefaultWrapperSelector
	}
	return cloned
}

// Merge returns o with every field that is set in override replaced.
func (o Options) Merge(override Options) Options {
	merged := o.clone()
	if override.AllowedBlocks != nil {
		merged.AllowedBlocks = append([]string{}, override.AllowedBlocks...)
	}
	if override.Template != nil {
		merged.Template = cloneTemplate(override.Template)
	}
	if override.TemplateLock != nil {
		merged.TemplateLock = Bool(*override.TemplateLock)
	}
	if override.WrapperSelector != "" {
		merged.WrapperSelector = override.WrapperSelector
	}
	return merged
}

func (o Options) clone() Options {
	cloned := o
	if o.AllowedBlocks != nil {
		cloned.AllowedBlocks = append([]string{}, o.AllowedBlocks...)
	}
	cloned.Template = cloneTemplate(o.Template)
	if o.TemplateLock != nil {
		cloned.TemplateLock = Bool(*o.TemplateLock)
	}
	return cloned
}

// Validate checks that option values are valid.
func (o Options) Validate() error {
	for _, name := range o.AllowedBlocks {
		if !blockNamePattern.MatchString(name) {
			return fmt.Errorf("invalid allowedBlocks entry %q: must be namespace/name", name)
		}
	}
	if err := validateTemplate(o.Template); err != nil {
		return err
	}
	return nil
}

func validateTemplate(blocks []TemplateBlock) error {
	for _, block := range blocks {
		if !blockNamePattern.MatchString(block.Name) {
			return fmt.Errorf("invalid template block name %q: must be namespace/name", block.Name)
		}
		if err := validateTemplate(block.InnerBlocks); err != nil {
			return err
		}
	}
	return nil
}

// Sanitize returns a copy of o without the allowedBlocks entries and template
// blocks that Validate would reject, plus one warning per dropped value. An
// explicit allowedBlocks list stays non-nil even when every entry is dropped.
func (o Options) Sanitize() (Options, []Warning) {
	sanitized := o.clone()
	var warnings []Warning

	if o.AllowedBlocks != nil {
		sanitized.AllowedBlocks = make([]string, 0, len(o.AllowedBlocks))
		for _, name := range o.AllowedBlocks {
			if !blockNamePattern.MatchString(name) {
				warnings = append(warnings, Warning{
					Type:     WarningInvalidOption,
					NodeType: "allowedBlocks",
					Message:  fmt.Sprintf("invalid allowedBlocks entry %q dropped", name),
				})
				continue
			}
			sanitized.AllowedBlocks = append(sanitized.AllowedBlocks, name)
		}
	}
	if o.Template != nil {
		sanitized.Template = sanitizeTemplate(sanitized.Template, &warnings)
	}
	return sanitized, warnings
}

func sanitizeTemplate(blocks []TemplateBlock, warnings *[]Warning) []TemplateBlock {
	kept := make([]TemplateBlock, 0, len(blocks))
	for _, block := range blocks {
		if !blockNamePattern.MatchString(block.Name) {
			*warnings = append(*warnings, Warning{
				Type:     WarningInvalidOption,
				NodeType: "template",
				Message:  fmt.Sprintf("invalid template block name %q dropped", block.Name),
			})
			continue
		}
		if block.InnerBlocks != nil {
			block.InnerBlocks = sanitizeTemplate(block.InnerBlocks, warnings)
		}
		kept = append(kept, block)
	}
	return kept
}
