// Package outline flattens a document tree into addressable entries
// with their heading breadcrumb, for navigation and edit targeting.
package outline

import (
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
)

// Entry is one node of the flattened outline. Path addresses the node
// as child indexes from the root and can be fed straight back into an
// edit op.
type Entry struct {
	Kind       string   `json:"kind"`
	Level      int      `json:"level,omitempty"`
	Title      string   `json:"title,omitempty"`
	Preview    string   `json:"preview,omitempty"`
	Breadcrumb []string `json:"breadcrumb,omitempty"`
	Words      int      `json:"words"`
	Runs       int      `json:"runs"`
	Snapshot   bool     `json:"snapshot"`
	Path       []int    `json:"path"`
}

// previewLen caps the text preview carried per entry.
const previewLen = 120

// Flatten walks the tree depth-first and emits one entry per node,
// root excluded.
func Flatten(root *doctree.Node) []Entry {
	var entries []Entry
	for i, child := range root.Children {
		walkNode(child, nil, []int{i}, &entries)
	}
	return entries
}

func walkNode(n *doctree.Node, breadcrumb []string, path []int, entries *[]Entry) {
	text := strings.TrimSpace(n.LinearText())
	_, hasSnapshot := n.Snapshot()

	e := Entry{
		Kind:       n.Kind.String(),
		Level:      n.HeadingLevel,
		Breadcrumb: append([]string(nil), breadcrumb...),
		Words:      CountWords(text),
		Runs:       len(n.Runs),
		Snapshot:   hasSnapshot,
		Path:       append([]int(nil), path...),
	}
	if n.Kind == doctree.KindHeading {
		e.Title = text
	} else {
		e.Preview = preview(text)
	}
	if n.Kind == doctree.KindTable && n.Meta.Table != nil {
		e.Words = 0
		e.Preview = strings.Join(n.Meta.Table.Headers, ", ")
	}
	*entries = append(*entries, e)

	childCrumb := breadcrumb
	if n.Kind == doctree.KindHeading && text != "" {
		childCrumb = append(append([]string(nil), breadcrumb...), text)
	}
	for i, c := range n.Children {
		walkNode(c, childCrumb, append(path, i), entries)
	}
}

// CountWords estimates content size for outline entries. Exact
// tokenization is not required here.
func CountWords(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}

func preview(text string) string {
	if len(text) <= previewLen {
		return text
	}
	cut := text[:previewLen]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
