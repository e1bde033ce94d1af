package placeholder

import (
	"sort"
	"strings"
)

// Substitute replaces every tag-shaped sentinel in markup with innerContent.
// Both spellings are handled in one pass and all other bytes are left as they
// are. innerContent is inserted literally.
func Substitute(markup, innerContent string) string {
	return tagPattern.ReplaceAllLiteralString(markup, innerContent)
}

// Substitute replaces sentinels with innerContent. With the class encoding,
// empty marker elements are replaced in the same pass as any tag-shaped
// sentinel the server left in place.
func (d *Detector) Substitute(markup, innerContent string) string {
	if d.config.Encoding != EncodingClass {
		return Substitute(markup, innerContent)
	}

	spans := append(
		tagPattern.FindAllStringIndex(markup, -1),
		d.markerPattern.FindAllStringIndex(markup, -1)...,
	)
	if len(spans) == 0 {
		return markup
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })

	var sb strings.Builder
	sb.Grow(len(markup) + len(spans)*len(innerContent))
	last := 0
	for _, span := range spans {
		if span[0] < last {
			continue
		}
		sb.WriteString(markup[last:span[0]])
		sb.WriteString(innerContent)
		last = span[1]
	}
	sb.WriteString(markup[last:])
	return sb.String()
}
