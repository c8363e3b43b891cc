package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	out := &Document{
		Title: strings.TrimSuffix(strings.TrimSuffix(filename, ".html"), ".htm"),
	}
	if title := findTitle(doc); title != "" {
		out.Title = title
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				runs, meta := htmlRuns(n, doctree.RunFormatting{})
				out.Blocks = append(out.Blocks, doctree.BlockItem{
					Kind:         doctree.KindHeading,
					HeadingLevel: level,
					Text:         runsText(runs),
					Runs:         runs,
					Para:         &doctree.ParagraphFormatting{StyleID: fmt.Sprintf("Heading%d", level)},
					Meta:         meta,
				})
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "li":
				runs, meta := htmlRuns(n, doctree.RunFormatting{})
				if len(runs) > 0 {
					out.Blocks = append(out.Blocks, doctree.BlockItem{
						Kind: doctree.KindListItem,
						Text: runsText(runs),
						Runs: runs,
						Meta: meta,
					})
				}
				return
			case "p", "td", "blockquote":
				runs, meta := htmlRuns(n, doctree.RunFormatting{})
				if len(runs) > 0 {
					out.Blocks = append(out.Blocks, doctree.BlockItem{
						Kind: doctree.KindParagraph,
						Text: runsText(runs),
						Runs: runs,
						Meta: meta,
					})
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	body := findBody(doc)
	if body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return out, nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// htmlRuns flattens an element's contents into formatted runs, mapping
// inline markup (b/strong, i/em, u, s, code, sub, sup) onto run
// formatting and collecting anchor hrefs.
func htmlRuns(n *html.Node, inherited doctree.RunFormatting) ([]doctree.Run, doctree.Metadata) {
	var runs []doctree.Run
	var meta doctree.Metadata
	var walk func(*html.Node, doctree.RunFormatting)
	walk = func(n *html.Node, f doctree.RunFormatting) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				t := collapseSpace(c.Data)
				if strings.TrimSpace(t) != "" {
					runs = append(runs, doctree.TextRun(t, f))
				}
				continue
			}
			if c.Type != html.ElementNode {
				continue
			}
			cf := f
			switch c.Data {
			case "b", "strong":
				cf.Bold = true
			case "i", "em":
				cf.Italic = true
			case "u":
				cf.Underline = true
				cf.UnderlineStyle = "single"
			case "s", "del":
				cf.Strike = true
			case "code":
				cf.CharStyle = "Code"
			case "sub":
				cf.Subscript = true
			case "sup":
				cf.Superscript = true
			case "br":
				runs = append(runs, doctree.BreakRun("", f))
				continue
			case "a":
				for _, attr := range c.Attr {
					if attr.Key == "href" {
						meta.HyperlinkTargets = append(meta.HyperlinkTargets, attr.Val)
					}
				}
			}
			walk(c, cf)
		}
	}
	walk(n, inherited)
	return runs, meta
}

// collapseSpace squeezes whitespace sequences to single spaces while
// keeping one leading/trailing space so adjacent inline runs stay
// separated.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if s[0] == ' ' || s[0] == '\n' || s[0] == '\t' {
		out = " " + out
	}
	last := s[len(s)-1]
	if last == ' ' || last == '\n' || last == '\t' {
		out += " "
	}
	return out
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
