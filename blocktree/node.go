package blocktree

import "encoding/json"

// NodeKind identifies the variant of a Node.
type NodeKind string

const (
	KindElement     NodeKind = "element"
	KindText        NodeKind = "text"
	KindInnerBlocks NodeKind = "innerBlocks"
)

// Prop names used on element nodes.
const (
	PropClassName = "className"
	PropStyle     = "style"
)

// Node is one node of the rebuilt tree handed to the editor.
//
// Element nodes carry Tag, Key, Props and Children. Text nodes carry Text.
// InnerBlocks nodes carry Key and Region and mark where the nested-editing
// region is mounted.
type Node struct {
	Kind     NodeKind       `json:"kind"`
	Tag      string         `json:"tag,omitempty"`
	Key      string         `json:"key,omitempty"`
	Props    map[string]any `json:"props,omitempty"`
	Text     string         `json:"text,omitempty"`
	Children []*Node        `json:"children,omitempty"`
	Region   *Region        `json:"region,omitempty"`
}

// Region holds the options passed to a nested-editing region. Only explicitly
// set options are present.
type Region struct {
	AllowedBlocks []string
	Template      []TemplateBlock
	TemplateLock  *bool
}

// MarshalJSON writes only the options that are set, so an explicit empty
// allowedBlocks list survives while an unset one is left out.
func (r Region) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 3)
	if r.AllowedBlocks != nil {
		out["allowedBlocks"] = r.AllowedBlocks
	}
	if r.Template != nil {
		out["template"] = r.Template
	}
	if r.TemplateLock != nil {
		out["templateLock"] = *r.TemplateLock
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (r *Region) UnmarshalJSON(data []byte) error {
	var raw struct {
		AllowedBlocks []string        `json:"allowedBlocks"`
		Template      []TemplateBlock `json:"template"`
		TemplateLock  *bool           `json:"templateLock"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.AllowedBlocks = raw.AllowedBlocks
	r.Template = raw.Template
	r.TemplateLock = raw.TemplateLock
	return nil
}

func newRegion(opts Options) *Region {
	cloned := opts.clone()
	return &Region{
		AllowedBlocks: cloned.AllowedBlocks,
		Template:      cloned.Template,
		TemplateLock:  cloned.TemplateLock,
	}
}

// ClassName returns the element's className prop.
func (n *Node) ClassName() string {
	if n == nil {
		return ""
	}
	className, _ := n.Props[PropClassName].(string)
	return className
}

// Style returns the element's parsed style prop, or nil.
func (n *Node) Style() map[string]string {
	if n == nil {
		return nil
	}
	style, _ := n.Props[PropStyle].(map[string]string)
	return style
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Regions returns every nested-editing region node under n.
func (n *Node) Regions() []*Node {
	var regions []*Node
	n.Walk(func(node *Node) bool {
		if node.Kind == KindInnerBlocks {
			regions = append(regions, node)
		}
		return true
	})
	return regions
}
