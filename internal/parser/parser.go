package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
)

// Document is a parsed file: a title plus the flat, ordered block
// sequence that doctree.Build turns into a tree.
type Document struct {
	Title  string
	Blocks []doctree.BlockItem
}

// Parser converts raw document bytes into a flat block sequence.
type Parser interface {
	Parse(r io.Reader, filename string) (*Document, error)
}

// PDFFallbackPdftotext controls whether PDF parsing may shell out to
// pdftotext when the Go library fails. Set once at startup.
var PDFFallbackPdftotext = true

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// styleHeadingLevel maps a Word paragraph style to a heading level.
// Both "HeadingN" style ids and "heading N" display names count,
// case-insensitively. 0 means not a heading.
func styleHeadingLevel(style string) int {
	s := strings.ToLower(strings.TrimSpace(style))
	if !strings.HasPrefix(s, "heading") {
		return 0
	}
	rest := strings.TrimSpace(s[len("heading"):])
	if len(rest) != 1 || rest[0] < '1' || rest[0] > '9' {
		return 0
	}
	return int(rest[0] - '0')
}
