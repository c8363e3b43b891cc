package editor

import (
	"strconv"
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
)

// SetStyle assigns a paragraph style to the node and keeps the node's
// structural kind in sync with it: a numbered heading style promotes
// the node to a heading of that level, and any other style demotes a
// heading back to a paragraph. Tree nesting is not re-derived; callers
// that care about structure must rebuild it themselves.
func SetStyle(n *doctree.Node, styleID string) bool {
	if n == nil || !n.Kind.TextBearing() {
		return false
	}
	if n.Para == nil {
		n.Para = &doctree.ParagraphFormatting{}
	}
	n.Para.StyleID = styleID

	if level := HeadingStyleLevel(styleID); level > 0 {
		n.Kind = doctree.KindHeading
		n.HeadingLevel = level
	} else if n.Kind == doctree.KindHeading {
		n.Kind = doctree.KindParagraph
		n.HeadingLevel = 0
	}

	n.ClearSnapshot()
	return true
}

// HeadingStyleLevel parses a heading level out of a paragraph style
// name. Both the style id form ("Heading3") and the display form
// ("heading 3") are recognized, case-insensitively. Returns 0 for
// anything else, including levels outside 1-9.
func HeadingStyleLevel(styleID string) int {
	s := strings.ToLower(strings.TrimSpace(styleID))
	if !strings.HasPrefix(s, "heading") {
		return 0
	}
	rest := strings.TrimSpace(s[len("heading"):])
	level, err := strconv.Atoi(rest)
	if err != nil || level < 1 || level > 9 {
		return 0
	}
	return level
}
