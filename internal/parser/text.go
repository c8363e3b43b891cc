package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
)

// TextParser handles plain text files. Blank lines separate
// paragraphs; there is no heading structure to recover.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	out := &Document{
		Title: strings.TrimSuffix(filename, ".txt"),
	}
	for _, para := range paragraphs {
		out.Blocks = append(out.Blocks, doctree.BlockItem{
			Kind: doctree.KindParagraph,
			Text: para,
		})
	}

	return out, nil
}
