package doctree

// maxHeadingLevel is the deepest heading level a document can declare.
const maxHeadingLevel = 9

// BlockItem is one pre-classified block from a format parser, before
// hierarchical nesting. Snapshot is the block's exact serialized form
// when the parser can supply it; empty means absent.
type BlockItem struct {
	Kind         Kind
	HeadingLevel int
	Text         string
	Runs         []Run
	Para         *ParagraphFormatting
	Snapshot     string
	Meta         Metadata
}

// Build assembles the flat block sequence into a tree rooted at a
// Document node, nesting every block under the nearest preceding
// heading of a shallower level.
//
// openAncestor[L] is the most recently seen heading of level L (index 0
// is the root and always set). A heading of level L attaches under the
// deepest still-open ancestor above it and then becomes the open
// ancestor for level L; any other block attaches under the ancestor at
// the current level. The fold is strictly left to right; no block is
// ever rejected, and out-of-range heading levels are clamped rather
// than errored.
func Build(items []BlockItem) *Node {
	root := NewNode(KindDocument)

	var openAncestor [maxHeadingLevel + 1]*Node
	openAncestor[0] = root
	currentLevel := 0

	for _, it := range items {
		node := nodeFromItem(it)

		if it.Kind == KindHeading && node.HeadingLevel > 0 {
			level := node.HeadingLevel

			parentLevel := currentLevel
			if level-1 < parentLevel {
				parentLevel = level - 1
			}
			for parentLevel > 0 && openAncestor[parentLevel] == nil {
				parentLevel--
			}
			openAncestor[parentLevel].AddChild(node)

			openAncestor[level] = node
			currentLevel = level
			continue
		}

		parent := openAncestor[currentLevel]
		if parent == nil {
			parent = root
		}
		parent.AddChild(node)
	}

	return root
}

func nodeFromItem(it BlockItem) *Node {
	n := NewNode(it.Kind)
	n.Text = it.Text
	n.Runs = it.Runs
	n.Para = it.Para
	n.Meta = it.Meta
	if it.Kind == KindHeading {
		n.HeadingLevel = clampLevel(it.HeadingLevel)
	}
	if it.Snapshot != "" {
		n.SetSnapshot(it.Snapshot)
	}
	return n
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > maxHeadingLevel {
		return maxHeadingLevel
	}
	return level
}
