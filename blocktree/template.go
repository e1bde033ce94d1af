package blocktree

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateBlock is one default nested block, written in the editor's array
// form: ["core/paragraph", {"placeholder": "..."}, [...inner blocks]].
type TemplateBlock struct {
	Name        string
	Attributes  map[string]any
	InnerBlocks []TemplateBlock
}

// MarshalJSON encodes the block in array form.
func (b TemplateBlock) MarshalJSON() ([]byte, error) {
	attrs := b.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}

	parts := []any{b.Name, attrs}
	if len(b.InnerBlocks) > 0 {
		parts = append(parts, b.InnerBlocks)
	}
	return json.Marshal(parts)
}

// UnmarshalJSON decodes the array form.
func (b *TemplateBlock) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("template block must be an array: %w", err)
	}
	if len(parts) == 0 || len(parts) > 3 {
		return fmt.Errorf("template block must have 1 to 3 elements, got %d", len(parts))
	}

	var decoded TemplateBlock
	if err := json.Unmarshal(parts[0], &decoded.Name); err != nil {
		return fmt.Errorf("template block name must be a string: %w", err)
	}
	if len(parts) > 1 {
		if err := json.Unmarshal(parts[1], &decoded.Attributes); err != nil {
			return fmt.Errorf("template block %q attributes must be an object: %w", decoded.Name, err)
		}
	}
	if len(parts) > 2 {
		if err := json.Unmarshal(parts[2], &decoded.InnerBlocks); err != nil {
			return fmt.Errorf("template block %q inner blocks: %w", decoded.Name, err)
		}
	}

	*b = decoded
	return nil
}

// UnmarshalYAML decodes the array form from a YAML sequence.
func (b *TemplateBlock) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: template block must be a sequence", value.Line)
	}
	if len(value.Content) == 0 || len(value.Content) > 3 {
		return fmt.Errorf("line %d: template block must have 1 to 3 elements, got %d", value.Line, len(value.Content))
	}

	var decoded TemplateBlock
	if err := value.Content[0].Decode(&decoded.Name); err != nil {
		return err
	}
	if len(value.Content) > 1 {
		if err := value.Content[1].Decode(&decoded.Attributes); err != nil {
			return err
		}
	}
	if len(value.Content) > 2 {
		if err := value.Content[2].Decode(&decoded.InnerBlocks); err != nil {
			return err
		}
	}

	*b = decoded
	return nil
}

func (b TemplateBlock) clone() TemplateBlock {
	cloned := TemplateBlock{
		Name:        b.Name,
		Attributes:  cloneAnyMap(b.Attributes),
		InnerBlocks: cloneTemplate(b.InnerBlocks),
	}
	return cloned
}

func cloneTemplate(src []TemplateBlock) []TemplateBlock {
	if src == nil {
		return nil
	}

	dst := make([]TemplateBlock, len(src))
	for i, block := range src {
		dst[i] = block.clone()
	}
	return dst
}

func cloneAnyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = cloneAnyValue(value)
	}
	return dst
}

func cloneAnyValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneAnyMap(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneAnyValue(item)
		}
		return out
	default:
		return v
	}
}
