package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docedit/internal/doctree"
)

// CSVParser handles CSV files, producing a single table block whose
// cell payload lives in the node metadata.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	out := &Document{
		Title: strings.TrimSuffix(filename, ".csv"),
	}
	if len(records) == 0 {
		return out, nil
	}

	table := &doctree.TableData{
		Headers: records[0],
		Rows:    records[1:],
	}
	out.Blocks = append(out.Blocks, doctree.BlockItem{
		Kind: doctree.KindTable,
		Meta: doctree.Metadata{Table: table},
	})

	return out, nil
}
