package blocktree

import (
	"bytes"
	"sort"
	"strings"

	xhtml "golang.org/x/net/html"
)

// RegionMountClass is the class of the empty element Render writes in place
// of a nested-editing region.
const RegionMountClass = "block-editor-inner-blocks"

// Render serializes a rebuilt tree back to HTML. Style maps are written as
// kebab-case declarations in sorted order, and nested-editing regions become
// empty mount elements.
func Render(root *Node) (string, error) {
	if root == nil {
		return "", nil
	}

	var buf bytes.Buffer
	for _, node := range toHTMLNodes(root) {
		if err := xhtml.Render(&buf, node); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func toHTMLNodes(node *Node) []*xhtml.Node {
	switch node.Kind {
	case KindText:
		return []*xhtml.Node{{Type: xhtml.TextNode, Data: node.Text}}

	case KindInnerBlocks:
		return []*xhtml.Node{{
			Type: xhtml.ElementNode,
			Data: "div",
			Attr: []xhtml.Attribute{{Key: "class", Val: RegionMountClass}},
		}}

	case KindElement:
		element := &xhtml.Node{
			Type: xhtml.ElementNode,
			Data: node.Tag,
			Attr: propsToAttributes(node.Props),
		}
		for _, child := range node.Children {
			for _, rendered := range toHTMLNodes(child) {
				element.AppendChild(rendered)
			}
		}
		return []*xhtml.Node{element}
	}
	return nil
}

func propsToAttributes(props map[string]any) []xhtml.Attribute {
	if len(props) == 0 {
		return nil
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]xhtml.Attribute, 0, len(names))
	for _, name := range names {
		switch value := props[name].(type) {
		case map[string]string:
			attrs = append(attrs, xhtml.Attribute{Key: name, Val: formatStyle(value)})
		case string:
			if name == PropClassName {
				name = "class"
			}
			attrs = append(attrs, xhtml.Attribute{Key: name, Val: value})
		}
	}
	return attrs
}

func formatStyle(style map[string]string) string {
	properties := make([]string, 0, len(style))
	for property := range style {
		properties = append(properties, property)
	}
	sort.Strings(properties)

	declarations := make([]string, 0, len(properties))
	for _, property := range properties {
		declarations = append(declarations, kebabCase(property)+":"+style[property])
	}
	return strings.Join(declarations, ";")
}

func kebabCase(property string) string {
	var sb strings.Builder
	sb.Grow(len(property) + 4)
	for i := 0; i < len(property); i++ {
		c := property[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte('-')
			sb.WriteByte(c - 'A' + 'a')
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
