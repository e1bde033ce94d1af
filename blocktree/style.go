package blocktree

import "strings"

// parseStyle splits an inline style into a property map keyed by camel-cased
// property names. Declarations without exactly one colon, or with an empty
// property, are returned in dropped.
func parseStyle(value string) (style map[string]string, dropped []string) {
	style = make(map[string]string)
	for _, declaration := range strings.Split(value, ";") {
		if strings.TrimSpace(declaration) == "" {
			continue
		}

		parts := strings.Split(declaration, ":")
		if len(parts) != 2 {
			dropped = append(dropped, strings.TrimSpace(declaration))
			continue
		}

		property := strings.TrimSpace(parts[0])
		if property == "" {
			dropped = append(dropped, strings.TrimSpace(declaration))
			continue
		}
		style[camelCase(property)] = strings.TrimSpace(parts[1])
	}
	return style, dropped
}

// camelCase converts kebab-case to camelCase: a hyphen followed by a
// lowercase letter becomes that letter uppercased.
func camelCase(property string) string {
	if !strings.Contains(property, "-") {
		return property
	}

	var sb strings.Builder
	sb.Grow(len(property))
	for i := 0; i < len(property); i++ {
		c := property[i]
		if c == '-' && i+1 < len(property) && property[i+1] >= 'a' && property[i+1] <= 'z' {
			sb.WriteByte(property[i+1] - 'a' + 'A')
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
