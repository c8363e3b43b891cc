// Package writer renders a document tree back out: markdown for human
// consumption, or an OOXML body fragment that reuses per-node
// snapshots whenever they are still valid.
package writer

import (
	"strings"

	"github.com/dgallion1/docedit/internal/docprops"
	"github.com/dgallion1/docedit/internal/doctree"
)

// Markdown renders the tree as a markdown document. Run formatting is
// mapped back onto inline marks; the title property, when set, becomes
// a leading H1.
func Markdown(root *doctree.Node, props *docprops.Store) string {
	var sb strings.Builder
	if props != nil {
		if title := props.Title(); title != "" {
			sb.WriteString("# ")
			sb.WriteString(title)
			sb.WriteString("\n\n")
		}
	}
	for _, child := range root.Children {
		writeMarkdownNode(&sb, child)
	}
	return sb.String()
}

func writeMarkdownNode(sb *strings.Builder, n *doctree.Node) {
	switch n.Kind {
	case doctree.KindHeading:
		level := n.HeadingLevel
		if level < 1 {
			level = 1
		}
		sb.WriteString(strings.Repeat("#", level))
		sb.WriteString(" ")
		sb.WriteString(strings.TrimSpace(n.LinearText()))
		sb.WriteString("\n\n")

	case doctree.KindParagraph, doctree.KindHyperlink, doctree.KindTextRun, doctree.KindContentControl:
		text := markdownInline(n)
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n\n")
		}

	case doctree.KindListItem:
		sb.WriteString("- ")
		sb.WriteString(markdownInline(n))
		sb.WriteString("\n")

	case doctree.KindTable:
		writeMarkdownTable(sb, n.Meta.Table)

	case doctree.KindImage:
		if img := n.Meta.Image; img != nil {
			sb.WriteString("![")
			sb.WriteString(img.AltText)
			sb.WriteString("](")
			sb.WriteString(img.RelID)
			sb.WriteString(")\n\n")
		}

	case doctree.KindList:
		// The items render themselves; a blank line closes the list.
		defer sb.WriteString("\n")
	}

	for _, c := range n.Children {
		writeMarkdownNode(sb, c)
	}
}

// markdownInline renders a node's runs with markdown inline marks,
// falling back to the plain text when the node has no runs.
func markdownInline(n *doctree.Node) string {
	if len(n.Runs) == 0 {
		return strings.TrimSpace(n.Text)
	}
	var sb strings.Builder
	for _, r := range n.Runs {
		switch {
		case r.IsTab:
			sb.WriteString("\t")
		case r.IsBreak:
			sb.WriteString("  \n")
		default:
			sb.WriteString(markdownRun(r))
		}
	}
	return strings.TrimSpace(sb.String())
}

func markdownRun(r doctree.Run) string {
	text := r.Text
	if text == "" {
		return ""
	}
	// Marks wrap the trimmed core so spaces stay outside the
	// delimiters, where markdown requires them.
	leading := text[:len(text)-len(strings.TrimLeft(text, " "))]
	trailing := text[len(strings.TrimRight(text, " ")):]
	core := strings.TrimSpace(text)
	if core == "" {
		return text
	}

	if r.Format.CharStyle == "Code" {
		core = "`" + core + "`"
	}
	if r.Format.Bold && r.Format.Italic {
		core = "***" + core + "***"
	} else if r.Format.Bold {
		core = "**" + core + "**"
	} else if r.Format.Italic {
		core = "*" + core + "*"
	}
	if r.Format.Strike {
		core = "~~" + core + "~~"
	}
	return leading + core + trailing
}

func writeMarkdownTable(sb *strings.Builder, table *doctree.TableData) {
	if table == nil {
		return
	}
	if len(table.Headers) > 0 {
		sb.WriteString("| ")
		sb.WriteString(strings.Join(table.Headers, " | "))
		sb.WriteString(" |\n|")
		for range table.Headers {
			sb.WriteString(" --- |")
		}
		sb.WriteString("\n")
	}
	for _, row := range table.Rows {
		sb.WriteString("| ")
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString(" |\n")
	}
	sb.WriteString("\n")
}
