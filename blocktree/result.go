package blocktree

// Result holds the output of a tree rebuild.
//
// A nil Root means the markup should be rendered verbatim: it was empty, it
// had no sentinel, or no wrapper element could be located.
type Result struct {
	Root         *Node     `json:"root,omitempty"`
	WrapperClass string    `json:"wrapperClass,omitempty"`
	Warnings     []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes rebuild warnings.
type WarningType string

const (
	WarningDroppedStyle    WarningType = "dropped_style"
	WarningDroppedNode     WarningType = "dropped_node"
	WarningMissingWrapper  WarningType = "missing_wrapper"
	WarningMissingRegion   WarningType = "missing_region"
	WarningInvalidSelector WarningType = "invalid_selector"
	WarningParseFailed     WarningType = "parse_failed"
	WarningInvalidOption   WarningType = "invalid_option"
)

// Warning represents a non-fatal issue encountered while rebuilding.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
