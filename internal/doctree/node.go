package doctree

import "strings"

// Kind classifies a node in the document tree.
type Kind int

const (
	KindDocument Kind = iota
	KindHeading
	KindParagraph
	KindTable
	KindImage
	KindList
	KindListItem
	KindHyperlink
	KindTextRun
	KindContentControl
)

var kindNames = map[Kind]string{
	KindDocument:       "document",
	KindHeading:        "heading",
	KindParagraph:      "paragraph",
	KindTable:          "table",
	KindImage:          "image",
	KindList:           "list",
	KindListItem:       "list_item",
	KindHyperlink:      "hyperlink",
	KindTextRun:        "text_run",
	KindContentControl: "content_control",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// TextBearing reports whether range edits apply to this kind of node.
func (k Kind) TextBearing() bool {
	switch k {
	case KindHeading, KindParagraph, KindListItem, KindHyperlink, KindTextRun:
		return true
	}
	return false
}

// ParagraphFormatting holds paragraph-level formatting.
type ParagraphFormatting struct {
	StyleID       string
	Alignment     string
	SpacingBefore string
	SpacingAfter  string
}

// TableData is the cell payload of a table node.
type TableData struct {
	Headers []string
	Rows    [][]string
}

// ImageData describes an embedded image.
type ImageData struct {
	RelID       string
	ContentType string
	Width       int
	Height      int
	AltText     string
}

// Metadata is the typed side-channel of a node. Known payloads get a
// field each; Extra carries forward-compatible data we don't interpret.
type Metadata struct {
	Table            *TableData
	Image            *ImageData
	ListID           int
	ListLevel        int
	HyperlinkTargets []string
	Extra            map[string][]byte
}

// Node is one element of the document tree. A node owns its children;
// the parent pointer is navigation only and never an ownership path.
type Node struct {
	Kind         Kind
	HeadingLevel int // 0 = not a heading, else 1-9

	// Text is the fallback plain text, authoritative only when Runs
	// is empty.
	Text string
	Runs []Run

	Para *ParagraphFormatting
	Meta Metadata

	Children []*Node

	parent *Node

	// snapshot is the node's exact prior serialized form. hasSnapshot
	// distinguishes "absent" from an empty capture; every mutation path
	// clears it through ClearSnapshot, never by zeroing the string.
	snapshot    string
	hasSnapshot bool
}

// NewNode creates a detached node of the given kind.
func NewNode(kind Kind) *Node {
	return &Node{Kind: kind}
}

// AddChild appends child to n, transferring ownership and setting the
// parent back-reference.
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// SetSnapshot records the node's serialized form as captured by the
// source parser. Set once at construction time; mutations clear it.
func (n *Node) SetSnapshot(s string) {
	n.snapshot = s
	n.hasSnapshot = true
}

// ClearSnapshot marks the snapshot absent. Once cleared it is never
// restored; the writer must regenerate this node from the model.
func (n *Node) ClearSnapshot() {
	n.snapshot = ""
	n.hasSnapshot = false
}

// Snapshot returns the stored serialized form and whether it is still
// valid for this node.
func (n *Node) Snapshot() (string, bool) {
	return n.snapshot, n.hasSnapshot
}

// LinearText returns the node's logical character sequence: the runs'
// contributions concatenated in order, or the fallback text when the
// node has no runs.
func (n *Node) LinearText() string {
	if len(n.Runs) == 0 {
		return n.Text
	}
	var sb strings.Builder
	for _, r := range n.Runs {
		sb.WriteString(r.Contribution())
	}
	return sb.String()
}

// Walk visits n and every descendant depth-first, in document order.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
