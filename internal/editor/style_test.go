package editor

import (
	"testing"

	"github.com/dgallion1/docedit/internal/doctree"
)

func TestSetStyle_PromotesToHeading(t *testing.T) {
	n := doctree.NewNode(doctree.KindParagraph)
	n.Text = "Section title"
	n.SetSnapshot("<w:p/>")

	if !SetStyle(n, "Heading2") {
		t.Fatalf("expected SetStyle to succeed")
	}
	if n.Kind != doctree.KindHeading || n.HeadingLevel != 2 {
		t.Errorf("expected heading level 2, got %s level %d", n.Kind, n.HeadingLevel)
	}
	if n.Para == nil || n.Para.StyleID != "Heading2" {
		t.Errorf("style id not recorded")
	}
	if _, ok := n.Snapshot(); ok {
		t.Errorf("style change must clear the snapshot")
	}
}

func TestSetStyle_DemotesHeadingToParagraph(t *testing.T) {
	n := doctree.NewNode(doctree.KindParagraph)
	SetStyle(n, "Heading2")

	SetStyle(n, "Normal")
	if n.Kind != doctree.KindParagraph || n.HeadingLevel != 0 {
		t.Errorf("expected paragraph level 0, got %s level %d", n.Kind, n.HeadingLevel)
	}
	if n.Para.StyleID != "Normal" {
		t.Errorf("style id not updated: %q", n.Para.StyleID)
	}
}

func TestSetStyle_NonHeadingStyleOnParagraphKeepsKind(t *testing.T) {
	n := doctree.NewNode(doctree.KindParagraph)
	SetStyle(n, "Quote")
	if n.Kind != doctree.KindParagraph || n.HeadingLevel != 0 {
		t.Errorf("plain style on paragraph should not change kind")
	}
}

func TestSetStyle_PreservesExistingParagraphFormatting(t *testing.T) {
	n := doctree.NewNode(doctree.KindParagraph)
	n.Para = &doctree.ParagraphFormatting{Alignment: "center"}

	SetStyle(n, "Heading1")
	if n.Para.Alignment != "center" {
		t.Errorf("alignment lost on style change")
	}
}

func TestHeadingStyleLevel(t *testing.T) {
	cases := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"heading 3", 3},
		{"HEADING9", 9},
		{"Heading 5", 5},
		{"Heading0", 0},
		{"Heading10", 0},
		{"Normal", 0},
		{"Title", 0},
		{"", 0},
		{"Heading", 0},
		{"Headingabc", 0},
	}
	for _, tc := range cases {
		if got := HeadingStyleLevel(tc.style); got != tc.want {
			t.Errorf("HeadingStyleLevel(%q): expected %d, got %d", tc.style, tc.want, got)
		}
	}
}

func TestApplyOp_Dispatch(t *testing.T) {
	root := doctree.Build([]doctree.BlockItem{
		{Kind: doctree.KindParagraph, Text: "cat cat cat"},
		{Kind: doctree.KindParagraph, Runs: []doctree.Run{
			doctree.TextRun("x", doctree.RunFormatting{FontASCII: "Arial"}),
		}},
	})

	count, err := ApplyOp(root, Op{Op: "bold", Path: []int{0}, Needle: "cat", All: true})
	if err != nil {
		t.Fatalf("substring op failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 occurrences, got %d", count)
	}

	count, err = ApplyOp(root, Op{Op: "replace-font", From: "arial", To: "Calibri"})
	if err != nil {
		t.Fatalf("replace-font op failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 run changed, got %d", count)
	}

	count, err = ApplyOp(root, Op{Op: "style", Path: []int{0}, Value: "Heading2"})
	if err != nil || count != 1 {
		t.Fatalf("style op failed: count=%d err=%v", count, err)
	}
	if root.Children[0].Kind != doctree.KindHeading {
		t.Errorf("style op should promote node")
	}

	if _, err := ApplyOp(root, Op{Op: "sparkle", Path: []int{0}}); err == nil {
		t.Errorf("unknown op should error")
	}
	if _, err := ApplyOp(root, Op{Op: "bold", Path: []int{9}}); err == nil {
		t.Errorf("bad path should error")
	}

	// Out-of-bounds range is an expected input condition: zero, no error.
	count, err = ApplyOp(root, Op{Op: "bold", Path: []int{0}, Start: 500, Length: 10})
	if err != nil || count != 0 {
		t.Errorf("invalid range: expected count 0 and no error, got %d, %v", count, err)
	}
}
