package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*Document, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "docedit-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	out := &Document{
		Title: strings.TrimSuffix(filename, ".docx"),
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}

		style := docxParagraphStyle(para)
		runs := docxParagraphRuns(para)
		text := runsText(runs)
		if strings.TrimSpace(text) == "" {
			continue
		}

		block := doctree.BlockItem{
			Kind: doctree.KindParagraph,
			Text: text,
			Runs: runs,
		}
		if style != "" {
			block.Para = &doctree.ParagraphFormatting{StyleID: style}
		}
		if level := styleHeadingLevel(style); level > 0 {
			block.Kind = doctree.KindHeading
			block.HeadingLevel = level
		}
		out.Blocks = append(out.Blocks, block)
	}

	return out, nil
}

func docxParagraphStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// docxParagraphRuns keeps the source run boundaries: one run per w:r,
// with each run's w:t contents concatenated.
func docxParagraphRuns(para *docx.Paragraph) []doctree.Run {
	var runs []doctree.Run
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
		if buf.Len() == 0 {
			continue
		}
		runs = append(runs, doctree.TextRun(buf.String(), doctree.RunFormatting{}))
	}
	return runs
}

func runsText(runs []doctree.Run) string {
	var buf strings.Builder
	for _, r := range runs {
		buf.WriteString(r.Contribution())
	}
	return buf.String()
}
