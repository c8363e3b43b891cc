// Package editor applies formatting changes to nodes of a document
// tree while preserving their text content byte-for-byte. Range edits
// split runs at the requested boundaries; every successful mutation
// clears the node's round-trip snapshot so the writer regenerates it.
package editor

import (
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
)

// Setter mutates one run's formatting in place. Setters overwrite
// values rather than accumulate, so applying one twice is a no-op.
type Setter func(*doctree.RunFormatting)

// ApplyToRange applies set to the characters [start, start+length) of
// the node's linear text, splitting runs as needed. It returns false
// without mutating anything when the range is invalid or the node's
// kind carries no text. The run list is replaced wholesale, never
// edited in place, and its concatenated text is unchanged.
func ApplyToRange(n *doctree.Node, start, length int, set Setter) bool {
	if n == nil || !n.Kind.TextBearing() {
		return false
	}
	text := n.LinearText()
	if start < 0 || length <= 0 || start+length > len(text) {
		return false
	}

	runs := n.Runs
	if len(runs) == 0 {
		if n.Text == "" {
			return false
		}
		runs = []doctree.Run{{Text: n.Text}}
	}

	end := start + length
	out := make([]doctree.Run, 0, len(runs)+2)

	offset := 0
	for _, r := range runs {
		runText := r.Contribution()
		runStart := offset
		runEnd := offset + len(runText)
		offset = runEnd

		switch {
		case runEnd <= start || runStart >= end:
			// Entirely outside the range.
			out = append(out, r.Clone())

		case runStart >= start && runEnd <= end:
			// Entirely inside: reformat, keep as one run.
			formatted := r.Clone()
			set(&formatted.Format)
			out = append(out, formatted)

		default:
			// Partial overlap. Markers are single characters, so a
			// marker run is always fully inside or outside; only
			// literal text runs reach here.
			lo := max(start, runStart)
			hi := min(end, runEnd)

			if lo > runStart {
				before := r.Clone()
				before.Text = runText[:lo-runStart]
				out = append(out, before)
			}

			middle := r.Clone()
			middle.Text = runText[lo-runStart : hi-runStart]
			set(&middle.Format)
			out = append(out, middle)

			if hi < runEnd {
				after := r.Clone()
				after.Text = runText[hi-runStart:]
				out = append(out, after)
			}
		}
	}

	n.Runs = out
	n.ClearSnapshot()
	return true
}

// ApplyToSubstring applies set to each occurrence of needle in the
// node's linear text: the first occurrence, or every non-overlapping
// occurrence left to right when all is true. Formatting changes never
// alter text length, so match offsets computed up front stay valid.
// Returns the number of occurrences changed; 0 if needle is empty or
// absent.
func ApplyToSubstring(n *doctree.Node, needle string, set Setter, all bool) int {
	if n == nil || needle == "" || !n.Kind.TextBearing() {
		return 0
	}
	text := n.LinearText()

	count := 0
	from := 0
	for {
		idx := strings.Index(text[from:], needle)
		if idx < 0 {
			break
		}
		at := from + idx
		if !ApplyToRange(n, at, len(needle), set) {
			break
		}
		count++
		from = at + len(needle)
		if !all {
			break
		}
	}
	return count
}

// ApplyToNode applies set to every run of the node, synthesizing a
// single run from the fallback text when the node has none. Returns
// false when the node carries no text at all.
func ApplyToNode(n *doctree.Node, set Setter) bool {
	if n == nil || !n.Kind.TextBearing() {
		return false
	}
	if len(n.Runs) == 0 {
		if n.Text == "" {
			return false
		}
		n.Runs = []doctree.Run{{Text: n.Text}}
	}
	for i := range n.Runs {
		set(&n.Runs[i].Format)
	}
	n.ClearSnapshot()
	return true
}

// ApplyToDocument applies set to every paragraph, heading, and list
// item under root. Returns the number of nodes changed.
func ApplyToDocument(root *doctree.Node, set Setter) int {
	if root == nil {
		return 0
	}
	changed := 0
	root.Walk(func(n *doctree.Node) bool {
		switch n.Kind {
		case doctree.KindParagraph, doctree.KindHeading, doctree.KindListItem:
			if ApplyToNode(n, set) {
				changed++
			}
		}
		return true
	})
	return changed
}

// ReplaceFont rewrites every font slot equal to from (case-insensitive)
// to to, across all runs under root. Returns the number of runs
// changed; each changed node loses its snapshot.
func ReplaceFont(root *doctree.Node, from, to string) int {
	if root == nil || from == "" {
		return 0
	}
	changed := 0
	root.Walk(func(n *doctree.Node) bool {
		nodeChanged := false
		for i := range n.Runs {
			f := &n.Runs[i].Format
			runChanged := false
			for _, slot := range []*string{&f.FontASCII, &f.FontEastAsia, &f.FontHAnsi, &f.FontCS} {
				if strings.EqualFold(*slot, from) {
					*slot = to
					runChanged = true
				}
			}
			if runChanged {
				changed++
				nodeChanged = true
			}
		}
		if nodeChanged {
			n.ClearSnapshot()
		}
		return true
	})
	return changed
}
