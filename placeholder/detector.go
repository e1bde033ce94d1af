package placeholder

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

// Encoding selects how the sentinel is spelled in server-rendered markup.
type Encoding string

const (
	// EncodingTag is the literal <InnerBlocks/> or <InnerBlocks></InnerBlocks> tag.
	EncodingTag Encoding = "tag"
	// EncodingClass is an element carrying the marker class, produced when the
	// server already normalized the tag.
	EncodingClass Encoding = "class"
)

// Config configures a Detector.
type Config struct {
	Encoding    Encoding `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	MarkerClass string   `json:"markerClass,omitempty" yaml:"markerClass,omitempty"`
}

func (c Config) applyDefaults() Config {
	if c.Encoding == "" {
		c.Encoding = EncodingTag
	}
	if c.MarkerClass == "" {
		c.MarkerClass = DefaultMarkerClass
	}
	return c
}

// Validate checks that config values are valid.
func (c Config) Validate() error {
	if c.Encoding != EncodingTag && c.Encoding != EncodingClass {
		return fmt.Errorf("invalid encoding %q", c.Encoding)
	}
	if !markerClassPattern.MatchString(c.MarkerClass) {
		return fmt.Errorf("invalid markerClass %q: must be a single CSS class name", c.MarkerClass)
	}
	return nil
}

// Detector recognizes the sentinel for one encoding. It holds no mutable
// state and is safe for concurrent use.
type Detector struct {
	config        Config
	markerPattern *regexp.Regexp
}

// New creates a Detector for the given config.
func New(config Config) (*Detector, error) {
	cfg := config.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Detector{
		config:        cfg,
		markerPattern: compileMarkerPattern(cfg.MarkerClass),
	}, nil
}

// Encoding reports the active sentinel encoding.
func (d *Detector) Encoding() Encoding {
	return d.config.Encoding
}

// MarkerClass reports the class used by the class encoding.
func (d *Detector) MarkerClass() string {
	return d.config.MarkerClass
}

// HasPlaceholder reports whether markup contains a tag-shaped sentinel.
func HasPlaceholder(markup string) bool {
	return tagPattern.MatchString(markup)
}

// HasPlaceholderInFile reports whether the file at path contains a tag-shaped
// sentinel. A missing or unreadable file reports false.
func HasPlaceholderInFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return HasPlaceholder(string(data))
}

// Count returns the number of tag-shaped sentinels in markup.
func Count(markup string) int {
	return len(tagPattern.FindAllStringIndex(markup, -1))
}

// Normalize rewrites every tag-shaped sentinel into the reserved element so an
// HTML parser keeps following siblings outside of it.
func Normalize(markup string) string {
	return tagPattern.ReplaceAllLiteralString(markup, reservedElement)
}

// Has reports whether markup contains a sentinel in the detector's encoding.
func (d *Detector) Has(markup string) bool {
	if d.config.Encoding == EncodingClass {
		return strings.Contains(markup, d.config.MarkerClass)
	}
	return HasPlaceholder(markup)
}

// HasInFile is Has applied to a file's content. A missing file reports false.
func (d *Detector) HasInFile(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return d.Has(string(data))
}

// Prepare returns markup ready for parsing.
func (d *Detector) Prepare(markup string) string {
	if d.config.Encoding == EncodingClass {
		return markup
	}
	return Normalize(markup)
}

// IsPlaceholder reports whether a parsed node stands for the sentinel.
func (d *Detector) IsPlaceholder(node *xhtml.Node) bool {
	if node == nil || node.Type != xhtml.ElementNode {
		return false
	}
	if d.config.Encoding == EncodingClass {
		return hasClass(node, d.config.MarkerClass)
	}
	return node.Data == ReservedTag
}

// ScanTemplates returns the files matching pattern that contain a sentinel.
// Only a malformed pattern is an error.
func (d *Detector) ScanTemplates(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan templates %q: %w", pattern, err)
	}

	found := make([]string, 0, len(matches))
	for _, path := range matches {
		if d.HasInFile(path) {
			found = append(found, path)
		}
	}
	return found, nil
}

func hasClass(node *xhtml.Node, class string) bool {
	for _, attr := range node.Attr {
		if attr.Namespace != "" || !strings.EqualFold(attr.Key, "class") {
			continue
		}
		for _, field := range strings.Fields(attr.Val) {
			if field == class {
				return true
			}
		}
	}
	return false
}
