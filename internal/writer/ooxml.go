package writer

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
)

// BodyXML renders the tree as a WordprocessingML body fragment. A node
// whose snapshot is still valid is emitted verbatim; everything else
// is regenerated from the model. List numbering ids come from a
// counter threaded through the traversal, so rendering is
// deterministic.
func BodyXML(root *doctree.Node) string {
	var sb strings.Builder
	numbering := 0
	for _, child := range root.Children {
		writeBodyNode(&sb, child, &numbering)
	}
	return sb.String()
}

func writeBodyNode(sb *strings.Builder, n *doctree.Node, numbering *int) {
	if snap, ok := n.Snapshot(); ok {
		sb.WriteString(snap)
		writeChildren(sb, n, numbering)
		return
	}

	switch n.Kind {
	case doctree.KindHeading, doctree.KindParagraph, doctree.KindHyperlink, doctree.KindTextRun, doctree.KindContentControl:
		writeParagraph(sb, n, 0)

	case doctree.KindList:
		*numbering++
		id := *numbering
		for _, item := range n.Children {
			writeParagraph(sb, item, id)
		}
		// Items already rendered; skip the shared child walk.
		return

	case doctree.KindListItem:
		*numbering++
		writeParagraph(sb, n, *numbering)

	case doctree.KindTable:
		writeTable(sb, n.Meta.Table)

	case doctree.KindImage:
		if img := n.Meta.Image; img != nil {
			fmt.Fprintf(sb, `<w:p><w:r><w:drawing><!-- image %s --></w:drawing></w:r></w:p>`, escape(img.RelID))
		}
	}

	writeChildren(sb, n, numbering)
}

func writeChildren(sb *strings.Builder, n *doctree.Node, numbering *int) {
	for _, c := range n.Children {
		writeBodyNode(sb, c, numbering)
	}
}

func writeParagraph(sb *strings.Builder, n *doctree.Node, numberingID int) {
	sb.WriteString("<w:p>")
	writeParaProps(sb, n, numberingID)

	runs := n.Runs
	if len(runs) == 0 && n.Text != "" {
		runs = []doctree.Run{{Text: n.Text}}
	}
	for _, r := range runs {
		writeRun(sb, r)
	}
	sb.WriteString("</w:p>")
}

func writeParaProps(sb *strings.Builder, n *doctree.Node, numberingID int) {
	var props strings.Builder
	styleID := ""
	if n.Para != nil {
		styleID = n.Para.StyleID
	}
	if styleID == "" && n.Kind == doctree.KindHeading && n.HeadingLevel > 0 {
		styleID = fmt.Sprintf("Heading%d", n.HeadingLevel)
	}
	if styleID != "" {
		fmt.Fprintf(&props, `<w:pStyle w:val="%s"/>`, escape(styleID))
	}
	if n.Para != nil && n.Para.Alignment != "" {
		fmt.Fprintf(&props, `<w:jc w:val="%s"/>`, escape(n.Para.Alignment))
	}
	if n.Para != nil && (n.Para.SpacingBefore != "" || n.Para.SpacingAfter != "") {
		props.WriteString("<w:spacing")
		if n.Para.SpacingBefore != "" {
			fmt.Fprintf(&props, ` w:before="%s"`, escape(n.Para.SpacingBefore))
		}
		if n.Para.SpacingAfter != "" {
			fmt.Fprintf(&props, ` w:after="%s"`, escape(n.Para.SpacingAfter))
		}
		props.WriteString("/>")
	}
	if numberingID > 0 {
		level := n.Meta.ListLevel
		fmt.Fprintf(&props, `<w:numPr><w:ilvl w:val="%d"/><w:numId w:val="%d"/></w:numPr>`, level, numberingID)
	}

	if props.Len() > 0 {
		sb.WriteString("<w:pPr>")
		sb.WriteString(props.String())
		sb.WriteString("</w:pPr>")
	}
}

func writeRun(sb *strings.Builder, r doctree.Run) {
	sb.WriteString("<w:r>")
	writeRunProps(sb, r.Format)
	switch {
	case r.IsTab:
		sb.WriteString("<w:tab/>")
	case r.IsBreak:
		if r.BreakKind != "" {
			fmt.Fprintf(sb, `<w:br w:type="%s"/>`, escape(r.BreakKind))
		} else {
			sb.WriteString("<w:br/>")
		}
	default:
		if needsSpacePreserve(r.Text) {
			fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t>`, escape(r.Text))
		} else {
			fmt.Fprintf(sb, `<w:t>%s</w:t>`, escape(r.Text))
		}
	}
	sb.WriteString("</w:r>")
}

func writeRunProps(sb *strings.Builder, f doctree.RunFormatting) {
	var props strings.Builder
	if f.CharStyle != "" {
		fmt.Fprintf(&props, `<w:rStyle w:val="%s"/>`, escape(f.CharStyle))
	}
	if f.FontASCII != "" || f.FontEastAsia != "" || f.FontHAnsi != "" || f.FontCS != "" {
		props.WriteString("<w:rFonts")
		if f.FontASCII != "" {
			fmt.Fprintf(&props, ` w:ascii="%s"`, escape(f.FontASCII))
		}
		if f.FontEastAsia != "" {
			fmt.Fprintf(&props, ` w:eastAsia="%s"`, escape(f.FontEastAsia))
		}
		if f.FontHAnsi != "" {
			fmt.Fprintf(&props, ` w:hAnsi="%s"`, escape(f.FontHAnsi))
		}
		if f.FontCS != "" {
			fmt.Fprintf(&props, ` w:cs="%s"`, escape(f.FontCS))
		}
		props.WriteString("/>")
	}
	if f.Bold {
		props.WriteString("<w:b/>")
	}
	if f.Italic {
		props.WriteString("<w:i/>")
	}
	if f.SmallCaps {
		props.WriteString("<w:smallCaps/>")
	}
	if f.AllCaps {
		props.WriteString("<w:caps/>")
	}
	if f.Strike {
		props.WriteString("<w:strike/>")
	}
	if f.DoubleStrike {
		props.WriteString("<w:dstrike/>")
	}
	if f.Color != "" {
		fmt.Fprintf(&props, `<w:color w:val="%s"/>`, escape(f.Color))
	}
	if f.Size != "" {
		fmt.Fprintf(&props, `<w:sz w:val="%s"/>`, escape(f.Size))
	}
	if f.SizeCS != "" {
		fmt.Fprintf(&props, `<w:szCs w:val="%s"/>`, escape(f.SizeCS))
	}
	if f.Highlight != "" {
		fmt.Fprintf(&props, `<w:highlight w:val="%s"/>`, escape(f.Highlight))
	}
	if f.Shading != "" {
		fmt.Fprintf(&props, `<w:shd w:val="clear" w:fill="%s"/>`, escape(f.Shading))
	}
	if f.Underline {
		style := f.UnderlineStyle
		if style == "" {
			style = "single"
		}
		fmt.Fprintf(&props, `<w:u w:val="%s"/>`, escape(style))
	}
	if f.Superscript {
		props.WriteString(`<w:vertAlign w:val="superscript"/>`)
	} else if f.Subscript {
		props.WriteString(`<w:vertAlign w:val="subscript"/>`)
	}

	if props.Len() > 0 {
		sb.WriteString("<w:rPr>")
		sb.WriteString(props.String())
		sb.WriteString("</w:rPr>")
	}
}

func writeTable(sb *strings.Builder, table *doctree.TableData) {
	if table == nil {
		return
	}
	sb.WriteString("<w:tbl>")
	if len(table.Headers) > 0 {
		writeTableRow(sb, table.Headers, true)
	}
	for _, row := range table.Rows {
		writeTableRow(sb, row, false)
	}
	sb.WriteString("</w:tbl>")
}

func writeTableRow(sb *strings.Builder, cells []string, header bool) {
	sb.WriteString("<w:tr>")
	for _, cell := range cells {
		sb.WriteString("<w:tc><w:p><w:r>")
		if header {
			sb.WriteString("<w:rPr><w:b/></w:rPr>")
		}
		fmt.Fprintf(sb, "<w:t>%s</w:t>", escape(cell))
		sb.WriteString("</w:r></w:p></w:tc>")
	}
	sb.WriteString("</w:tr>")
}

func needsSpacePreserve(text string) bool {
	return strings.HasPrefix(text, " ") || strings.HasSuffix(text, " ")
}

func escape(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
