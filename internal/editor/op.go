package editor

import (
	"fmt"

	"github.com/dgallion1/docedit/internal/doctree"
)

// Op is one JSON-decodable edit instruction, as submitted by API
// clients and batch jobs.
//
// Path addresses the target node as child indexes from the root; an
// empty path targets the whole document (valid for document-wide ops
// like replace-font, or node ops applied to the root). Range ops take
// Start/Length; substring ops take Needle and optionally All.
type Op struct {
	Op   string `json:"op"`
	Path []int  `json:"path,omitempty"`

	Start  int    `json:"start,omitempty"`
	Length int    `json:"length,omitempty"`
	Needle string `json:"needle,omitempty"`
	All    bool   `json:"all,omitempty"`

	// Value is the attribute value for color/highlight/size/font/
	// charstyle/style ops. From/To are used by replace-font.
	Value string `json:"value,omitempty"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
}

// ApplyOp resolves the op's target node and dispatches it. The return
// count is the number of runs or occurrences or nodes changed
// (operation-dependent); expected conditions like an out-of-bounds
// range or an absent needle yield 0 without an error. An unknown op
// name or unresolvable path is an error.
func ApplyOp(root *doctree.Node, op Op) (int, error) {
	switch op.Op {
	case "replace-font":
		return ReplaceFont(root, op.From, op.To), nil
	case "format-document":
		set, err := setterFor(op.Value, "")
		if err != nil {
			return 0, err
		}
		return ApplyToDocument(root, set), nil
	case "style":
		n, err := Resolve(root, op.Path)
		if err != nil {
			return 0, err
		}
		if SetStyle(n, op.Value) {
			return 1, nil
		}
		return 0, nil
	}

	set, err := setterFor(op.Op, op.Value)
	if err != nil {
		return 0, err
	}
	n, err := Resolve(root, op.Path)
	if err != nil {
		return 0, err
	}

	switch {
	case op.Needle != "":
		return ApplyToSubstring(n, op.Needle, set, op.All), nil
	case op.Length > 0:
		if ApplyToRange(n, op.Start, op.Length, set) {
			return 1, nil
		}
		return 0, nil
	default:
		if ApplyToNode(n, set) {
			return 1, nil
		}
		return 0, nil
	}
}

// Resolve walks root's children by index along path.
func Resolve(root *doctree.Node, path []int) (*doctree.Node, error) {
	n := root
	for depth, idx := range path {
		if idx < 0 || idx >= len(n.Children) {
			return nil, fmt.Errorf("path element %d: index %d out of range (%d children)", depth, idx, len(n.Children))
		}
		n = n.Children[idx]
	}
	return n, nil
}

// setterFor maps an attribute name (and optional value) to a Setter.
func setterFor(name, value string) (Setter, error) {
	switch name {
	case "bold":
		return func(f *doctree.RunFormatting) { f.Bold = true }, nil
	case "italic":
		return func(f *doctree.RunFormatting) { f.Italic = true }, nil
	case "underline":
		style := value
		if style == "" {
			style = "single"
		}
		return func(f *doctree.RunFormatting) {
			f.Underline = true
			f.UnderlineStyle = style
		}, nil
	case "strike":
		return func(f *doctree.RunFormatting) { f.Strike = true }, nil
	case "double-strike":
		return func(f *doctree.RunFormatting) { f.DoubleStrike = true }, nil
	case "superscript":
		return func(f *doctree.RunFormatting) { f.Superscript = true }, nil
	case "subscript":
		return func(f *doctree.RunFormatting) { f.Subscript = true }, nil
	case "smallcaps":
		return func(f *doctree.RunFormatting) { f.SmallCaps = true }, nil
	case "allcaps":
		return func(f *doctree.RunFormatting) { f.AllCaps = true }, nil
	case "color":
		return func(f *doctree.RunFormatting) { f.Color = value }, nil
	case "highlight":
		return func(f *doctree.RunFormatting) { f.Highlight = value }, nil
	case "shading":
		return func(f *doctree.RunFormatting) { f.Shading = value }, nil
	case "size":
		return func(f *doctree.RunFormatting) {
			f.Size = value
			f.SizeCS = value
		}, nil
	case "font":
		return func(f *doctree.RunFormatting) {
			f.FontASCII = value
			f.FontEastAsia = value
			f.FontHAnsi = value
			f.FontCS = value
		}, nil
	case "charstyle":
		return func(f *doctree.RunFormatting) { f.CharStyle = value }, nil
	}
	return nil, fmt.Errorf("unknown edit op %q", name)
}
