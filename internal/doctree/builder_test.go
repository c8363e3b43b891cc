package doctree

import "testing"

func heading(level int, text string) BlockItem {
	return BlockItem{Kind: KindHeading, HeadingLevel: level, Text: text}
}

func para(text string) BlockItem {
	return BlockItem{Kind: KindParagraph, Text: text}
}

func TestBuild_HeadingNesting(t *testing.T) {
	root := Build([]BlockItem{
		heading(1, "Intro"),
		para("a"),
		heading(2, "Sub"),
		para("b"),
		heading(1, "Methods"),
		para("c"),
	})

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(root.Children))
	}

	intro := root.Children[0]
	methods := root.Children[1]
	if intro.Text != "Intro" || methods.Text != "Methods" {
		t.Fatalf("unexpected top-level order: %q, %q", intro.Text, methods.Text)
	}

	// Intro owns the paragraph "a" and the Sub heading.
	if len(intro.Children) != 2 {
		t.Fatalf("Intro: expected 2 children, got %d", len(intro.Children))
	}
	if intro.Children[0].Text != "a" {
		t.Errorf("Intro child 0: expected %q, got %q", "a", intro.Children[0].Text)
	}
	sub := intro.Children[1]
	if sub.Text != "Sub" || sub.HeadingLevel != 2 {
		t.Errorf("expected Sub at level 2, got %q level %d", sub.Text, sub.HeadingLevel)
	}
	if len(sub.Children) != 1 || sub.Children[0].Text != "b" {
		t.Errorf("Sub: expected single child %q", "b")
	}

	if len(methods.Children) != 1 || methods.Children[0].Text != "c" {
		t.Errorf("Methods: expected single child %q", "c")
	}
}

func TestBuild_LevelGapAttachesUnderNearestOpenAncestor(t *testing.T) {
	// H3 directly after H1: no H2 is open, so it nests under the H1.
	root := Build([]BlockItem{
		heading(1, "Top"),
		heading(3, "Deep"),
		para("text"),
	})

	top := root.Children[0]
	if len(top.Children) != 1 {
		t.Fatalf("expected Deep under Top, got %d children", len(top.Children))
	}
	deep := top.Children[0]
	if deep.Text != "Deep" || deep.HeadingLevel != 3 {
		t.Fatalf("expected Deep at level 3, got %q level %d", deep.Text, deep.HeadingLevel)
	}
	if len(deep.Children) != 1 || deep.Children[0].Text != "text" {
		t.Errorf("expected paragraph under Deep")
	}
}

func TestBuild_SiblingHeadingsShareParent(t *testing.T) {
	root := Build([]BlockItem{
		heading(1, "A"),
		heading(2, "A.1"),
		heading(2, "A.2"),
	})

	a := root.Children[0]
	if len(a.Children) != 2 {
		t.Fatalf("expected A.1 and A.2 under A, got %d children", len(a.Children))
	}
	if a.Children[0].Text != "A.1" || a.Children[1].Text != "A.2" {
		t.Errorf("unexpected sibling order: %q, %q", a.Children[0].Text, a.Children[1].Text)
	}
}

func TestBuild_ClampsHeadingLevels(t *testing.T) {
	root := Build([]BlockItem{
		heading(0, "low"),
		heading(42, "high"),
	})

	if root.Children[0].HeadingLevel != 1 {
		t.Errorf("level 0 heading: expected clamp to 1, got %d", root.Children[0].HeadingLevel)
	}
	high := root.Children[0].Children[0]
	if high.Text != "high" || high.HeadingLevel != 9 {
		t.Errorf("level 42 heading: expected clamp to 9, got %d", high.HeadingLevel)
	}
}

func TestBuild_LeadingParagraphsAttachToRoot(t *testing.T) {
	root := Build([]BlockItem{
		para("preamble"),
		heading(1, "First"),
	})

	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children of root, got %d", len(root.Children))
	}
	if root.Children[0].Text != "preamble" || root.Children[0].Parent() != root {
		t.Errorf("preamble should be a direct child of root")
	}
}

func TestBuild_EveryNodeHasParentPathToRoot(t *testing.T) {
	root := Build([]BlockItem{
		heading(1, "A"),
		heading(3, "B"),
		para("p"),
		heading(2, "C"),
		{Kind: KindTable, Meta: Metadata{Table: &TableData{Rows: [][]string{{"x"}}}}},
	})

	root.Walk(func(n *Node) bool {
		if n == root {
			return true
		}
		seen := map[*Node]bool{}
		for p := n.Parent(); p != nil; p = p.Parent() {
			if seen[p] {
				t.Fatalf("parent cycle at %q", n.Text)
			}
			seen[p] = true
			if p == root {
				return true
			}
		}
		t.Errorf("node %q has no parent path to root", n.Text)
		return true
	})
}

func TestBuild_SnapshotCarriedFromBlockItem(t *testing.T) {
	root := Build([]BlockItem{
		{Kind: KindParagraph, Text: "hello", Snapshot: "<w:p>hello</w:p>"},
		{Kind: KindParagraph, Text: "plain"},
	})

	snap, ok := root.Children[0].Snapshot()
	if !ok || snap != "<w:p>hello</w:p>" {
		t.Errorf("expected snapshot to survive build, got %q (present=%v)", snap, ok)
	}
	if _, ok := root.Children[1].Snapshot(); ok {
		t.Errorf("expected no snapshot on plain paragraph")
	}
}
