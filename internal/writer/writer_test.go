package writer

import (
	"strings"
	"testing"

	"github.com/dgallion1/docedit/internal/docprops"
	"github.com/dgallion1/docedit/internal/doctree"
	"github.com/dgallion1/docedit/internal/editor"
)

func buildSample() *doctree.Node {
	return doctree.Build([]doctree.BlockItem{
		{Kind: doctree.KindHeading, HeadingLevel: 1, Text: "Intro"},
		{Kind: doctree.KindParagraph, Runs: []doctree.Run{
			doctree.TextRun("plain ", doctree.RunFormatting{}),
			doctree.TextRun("loud", doctree.RunFormatting{Bold: true}),
		}},
		{Kind: doctree.KindHeading, HeadingLevel: 2, Text: "Details"},
		{Kind: doctree.KindListItem, Text: "first point"},
	})
}

func TestMarkdown_HeadingsAndInlineMarks(t *testing.T) {
	props := docprops.New()
	props.Set(docprops.KeyTitle, "Report")

	md := Markdown(buildSample(), props)

	for _, want := range []string{"# Report", "# Intro", "## Details", "plain **loud**", "- first point"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_Table(t *testing.T) {
	root := doctree.Build([]doctree.BlockItem{
		{Kind: doctree.KindTable, Meta: doctree.Metadata{Table: &doctree.TableData{
			Headers: []string{"name", "age"},
			Rows:    [][]string{{"alice", "30"}},
		}}},
	})

	md := Markdown(root, nil)
	if !strings.Contains(md, "| name | age |") || !strings.Contains(md, "| alice | 30 |") {
		t.Errorf("table not rendered:\n%s", md)
	}
	if !strings.Contains(md, "| --- | --- |") {
		t.Errorf("header separator missing:\n%s", md)
	}
}

func TestBodyXML_RegeneratesFromRuns(t *testing.T) {
	root := doctree.Build([]doctree.BlockItem{
		{Kind: doctree.KindParagraph, Runs: []doctree.Run{
			doctree.TextRun("a", doctree.RunFormatting{Bold: true, Color: "FF0000"}),
			doctree.TabRun(doctree.RunFormatting{}),
			doctree.TextRun("b", doctree.RunFormatting{FontASCII: "Arial", Size: "24"}),
		}},
	})

	out := BodyXML(root)
	for _, want := range []string{"<w:p>", "<w:b/>", `<w:color w:val="FF0000"/>`, "<w:tab/>", `<w:rFonts w:ascii="Arial"/>`, `<w:sz w:val="24"/>`} {
		if !strings.Contains(out, want) {
			t.Errorf("body xml missing %q:\n%s", want, out)
		}
	}
}

func TestBodyXML_PrefersValidSnapshot(t *testing.T) {
	const snap = `<w:p w:rsidR="00AB12"><w:r><w:t>original bytes</w:t></w:r></w:p>`
	root := doctree.Build([]doctree.BlockItem{
		{Kind: doctree.KindParagraph, Text: "original bytes", Snapshot: snap},
		{Kind: doctree.KindParagraph, Text: "regenerated"},
	})

	out := BodyXML(root)
	if !strings.Contains(out, snap) {
		t.Errorf("valid snapshot should be emitted verbatim:\n%s", out)
	}
	if !strings.Contains(out, "<w:t>regenerated</w:t>") {
		t.Errorf("snapshotless node should be regenerated:\n%s", out)
	}
}

func TestBodyXML_MutationForcesRegeneration(t *testing.T) {
	const snap = `<w:p><w:r><w:t>cat dog</w:t></w:r></w:p>`
	root := doctree.Build([]doctree.BlockItem{
		{Kind: doctree.KindParagraph, Text: "cat dog", Snapshot: snap},
	})

	if n := editor.ApplyToSubstring(root.Children[0], "dog", func(f *doctree.RunFormatting) { f.Bold = true }, false); n != 1 {
		t.Fatalf("expected 1 occurrence formatted, got %d", n)
	}

	out := BodyXML(root)
	if strings.Contains(out, `w:rsidR`) || strings.Contains(out, snap) {
		t.Errorf("stale snapshot leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "<w:t>cat </w:t>") && !strings.Contains(out, `<w:t xml:space="preserve">cat </w:t>`) {
		t.Errorf("unformatted prefix missing:\n%s", out)
	}
	if !strings.Contains(out, "<w:rPr><w:b/></w:rPr>") {
		t.Errorf("bold run props missing:\n%s", out)
	}
}

func TestBodyXML_ListNumberingThreadedCounter(t *testing.T) {
	root := doctree.Build([]doctree.BlockItem{
		{Kind: doctree.KindListItem, Text: "one"},
		{Kind: doctree.KindListItem, Text: "two"},
	})

	out := BodyXML(root)
	if !strings.Contains(out, `<w:numId w:val="1"/>`) || !strings.Contains(out, `<w:numId w:val="2"/>`) {
		t.Errorf("expected sequential numbering ids:\n%s", out)
	}
	// Rendering twice yields identical ids: no cross-call state.
	if again := BodyXML(root); again != out {
		t.Errorf("rendering is not deterministic")
	}
}

func TestBodyXML_EscapesText(t *testing.T) {
	root := doctree.Build([]doctree.BlockItem{
		{Kind: doctree.KindParagraph, Text: `a < b & "c"`},
	})

	out := BodyXML(root)
	if strings.Contains(out, "a < b") {
		t.Errorf("text not escaped:\n%s", out)
	}
	if !strings.Contains(out, "a &lt; b &amp;") {
		t.Errorf("expected escaped entities:\n%s", out)
	}
}
