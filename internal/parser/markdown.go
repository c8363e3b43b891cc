package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Emphasis marks
// become formatted runs, so a markdown source round-trips through the
// same formatting model as a word-processing document.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	out := &Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".md"), ".markdown"),
	}

	listID := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			runs, meta := inlineRuns(node, src, doctree.RunFormatting{})
			out.Blocks = append(out.Blocks, doctree.BlockItem{
				Kind:         doctree.KindHeading,
				HeadingLevel: node.Level,
				Text:         runsText(runs),
				Runs:         runs,
				Para:         &doctree.ParagraphFormatting{StyleID: fmt.Sprintf("Heading%d", node.Level)},
				Meta:         meta,
			})

		case *ast.List:
			listID++
			out.Blocks = append(out.Blocks, doctree.BlockItem{
				Kind: doctree.KindList,
				Meta: doctree.Metadata{ListID: listID},
			})
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				runs, meta := listItemRuns(item, src)
				meta.ListID = listID
				out.Blocks = append(out.Blocks, doctree.BlockItem{
					Kind: doctree.KindListItem,
					Text: runsText(runs),
					Runs: runs,
					Meta: meta,
				})
			}

		case *ast.Paragraph:
			runs, meta := inlineRuns(node, src, doctree.RunFormatting{})
			if len(runs) == 0 {
				continue
			}
			out.Blocks = append(out.Blocks, doctree.BlockItem{
				Kind: doctree.KindParagraph,
				Text: runsText(runs),
				Runs: runs,
				Meta: meta,
			})

		default:
			t := blockText(n, src)
			if t == "" {
				continue
			}
			out.Blocks = append(out.Blocks, doctree.BlockItem{
				Kind: doctree.KindParagraph,
				Text: t,
			})
		}
	}

	return out, nil
}

// inlineRuns flattens a block's inline children into formatted runs,
// collecting hyperlink destinations into the returned metadata.
func inlineRuns(n ast.Node, src []byte, inherited doctree.RunFormatting) ([]doctree.Run, doctree.Metadata) {
	var runs []doctree.Run
	var meta doctree.Metadata
	var walk func(ast.Node, doctree.RunFormatting)
	walk = func(n ast.Node, f doctree.RunFormatting) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch inline := c.(type) {
			case *ast.Text:
				if v := inline.Segment.Value(src); len(v) > 0 {
					runs = append(runs, doctree.TextRun(string(v), f))
				}
				if inline.HardLineBreak() || inline.SoftLineBreak() {
					runs = append(runs, doctree.BreakRun("", f))
				}
			case *ast.Emphasis:
				ef := f
				if inline.Level >= 2 {
					ef.Bold = true
				} else {
					ef.Italic = true
				}
				walk(inline, ef)
			case *ast.CodeSpan:
				cf := f
				cf.CharStyle = "Code"
				walk(inline, cf)
			case *ast.Link:
				meta.HyperlinkTargets = append(meta.HyperlinkTargets, string(inline.Destination))
				walk(inline, f)
			default:
				walk(inline, f)
			}
		}
	}
	walk(n, inherited)
	return runs, meta
}

// listItemRuns extracts the runs of a list item's first text block.
func listItemRuns(item ast.Node, src []byte) ([]doctree.Run, doctree.Metadata) {
	var runs []doctree.Run
	var meta doctree.Metadata
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		switch c.(type) {
		case *ast.TextBlock, *ast.Paragraph:
			r, m := inlineRuns(c, src, doctree.RunFormatting{})
			runs = append(runs, r...)
			meta.HyperlinkTargets = append(meta.HyperlinkTargets, m.HyperlinkTargets...)
		}
	}
	return runs, meta
}

// blockText gets the plain text content of a goldmark block node.
func blockText(n ast.Node, src []byte) string {
	var buf strings.Builder
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	return strings.TrimSpace(buf.String())
}
