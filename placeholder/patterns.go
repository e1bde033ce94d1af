package placeholder

import (
	"regexp"
)

const (
	// ReservedTag is the element name a tag-shaped sentinel is rewritten to before parsing.
	ReservedTag = "innerblocks-placeholder"

	// DefaultMarkerClass is the class the server-side processor puts on the
	// normalized sentinel element.
	DefaultMarkerClass = "fanculo-block-inserter"

	reservedElement = "<" + ReservedTag + "></" + ReservedTag + ">"
)

var (
	// The open/close pair is listed first so a pair is consumed as one token
	// instead of leaving a dangling closing tag behind.
	tagPattern = regexp.MustCompile(`(?i)<innerblocks\s*>\s*</innerblocks\s*>|<innerblocks\s*/?>`)

	markerClassPattern = regexp.MustCompile(`^[A-Za-z_-][A-Za-z0-9_-]*$`)
)

func compileMarkerPattern(markerClass string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(markerClass)
	return regexp.MustCompile(
		`<(?i:div)\b[^>]*?\s(?i:class)\s*=\s*["'](?:[^"']*\s)?` + quoted + `(?:\s[^"']*)?["'][^>]*>\s*</(?i:div)\s*>`,
	)
}
