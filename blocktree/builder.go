package blocktree

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/nativeblocks/innerblocks/placeholder"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Config configures a Builder.
type Config struct {
	Placeholder placeholder.Config `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// Builder rebuilds server-rendered markup into a Node tree with the sentinel
// replaced by a nested-editing region. It is stateless and safe for
// concurrent use.
type Builder struct {
	detector *placeholder.Detector
}

type state struct {
	detector *placeholder.Detector
	options  Options
	warnings []Warning
	regions  int
}

// New creates a Builder with the given config.
func New(config Config) (*Builder, error) {
	detector, err := placeholder.New(config.Placeholder)
	if err != nil {
		return nil, err
	}
	return &Builder{detector: detector}, nil
}

// NewWithDetector creates a Builder that shares an existing detector.
func NewWithDetector(detector *placeholder.Detector) *Builder {
	return &Builder{detector: detector}
}

// Detector returns the sentinel detector used by b.
func (b *Builder) Detector() *placeholder.Detector {
	return b.detector
}

// Build parses markup and returns the rebuilt tree rooted at the wrapper
// element. Malformed markup is handled by the HTML parser's own recovery.
func (b *Builder) Build(markup string, opts Options) Result {
	if strings.TrimSpace(markup) == "" || !b.detector.Has(markup) {
		return Result{}
	}

	s := &state{
		detector: b.detector,
		options:  opts.WithDefaults(),
	}

	selector, err := cascadia.Compile(s.options.WrapperSelector)
	if err != nil {
		s.addWarning(WarningInvalidSelector, "", fmt.Sprintf("wrapper selector %q: %v", s.options.WrapperSelector, err))
		return Result{Warnings: s.warnings}
	}

	nodes, err := xhtml.ParseFragment(strings.NewReader(b.detector.Prepare(markup)), fragmentContext())
	if err != nil {
		s.addWarning(WarningParseFailed, "", fmt.Sprintf("failed to parse markup: %v", err))
		return Result{Warnings: s.warnings}
	}

	wrapper := findWrapper(nodes, selector)
	if wrapper == nil {
		s.addWarning(WarningMissingWrapper, "", fmt.Sprintf("no element matches wrapper selector %q", s.options.WrapperSelector))
		return Result{Warnings: s.warnings}
	}

	wrapperClass, _ := attrValue(wrapper, "class")
	root := &Node{
		Kind: KindElement,
		Tag:  wrapper.Data,
		Key:  "root",
		Props: map[string]any{
			PropClassName: wrapperClass,
		},
		Children: s.convertChildren(wrapper, ""),
	}

	if s.regions == 0 {
		s.addWarning(WarningMissingRegion, wrapper.Data, "sentinel found outside the wrapper element")
	}

	return Result{
		Root:         root,
		WrapperClass: wrapperClass,
		Warnings:     s.warnings,
	}
}

func fragmentContext() *xhtml.Node {
	return &xhtml.Node{
		Type:     xhtml.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
}

func findWrapper(nodes []*xhtml.Node, selector cascadia.Selector) *xhtml.Node {
	for _, node := range nodes {
		if found := selector.MatchFirst(node); found != nil {
			return found
		}
	}
	return nil
}

func (s *state) convertChildren(parent *xhtml.Node, path string) []*Node {
	var children []*Node
	index := 0
	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		if node := s.convertNode(child, childPath(path, index)); node != nil {
			children = append(children, node)
		}
		index++
	}
	return children
}

func childPath(parent string, index int) string {
	if parent == "" {
		return strconv.Itoa(index)
	}
	return parent + "-" + strconv.Itoa(index)
}

func (s *state) convertNode(node *xhtml.Node, path string) *Node {
	switch node.Type {
	case xhtml.ElementNode:
		if s.detector.IsPlaceholder(node) {
			s.regions++
			return &Node{
				Kind:   KindInnerBlocks,
				Key:    "innerblocks-" + path,
				Region: newRegion(s.options),
			}
		}
		return &Node{
			Kind:     KindElement,
			Tag:      node.Data,
			Key:      node.Data + "-" + path,
			Props:    s.convertAttributes(node),
			Children: s.convertChildren(node, path),
		}

	case xhtml.TextNode:
		text := strings.TrimSpace(node.Data)
		if text == "" {
			return nil
		}
		return &Node{Kind: KindText, Text: text}

	case xhtml.CommentNode:
		s.addWarning(WarningDroppedNode, "comment", "html comment dropped")
		return nil

	default:
		return nil
	}
}

func (s *state) convertAttributes(node *xhtml.Node) map[string]any {
	if len(node.Attr) == 0 {
		return nil
	}

	props := make(map[string]any, len(node.Attr))
	for _, attr := range node.Attr {
		name := attr.Key
		if attr.Namespace != "" {
			name = attr.Namespace + ":" + attr.Key
		}

		switch name {
		case "class", "classname":
			name = PropClassName
		}
		if _, exists := props[name]; exists {
			continue
		}

		if name == PropStyle {
			style, dropped := parseStyle(attr.Val)
			for _, declaration := range dropped {
				s.addWarning(WarningDroppedStyle, node.Data, fmt.Sprintf("malformed style declaration %q dropped", declaration))
			}
			props[name] = style
			continue
		}
		props[name] = attr.Val
	}
	return props
}

func attrValue(node *xhtml.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func (s *state) addWarning(warnType WarningType, nodeType, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:     warnType,
		NodeType: nodeType,
		Message:  message,
	})
}
