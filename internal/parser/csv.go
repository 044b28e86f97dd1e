package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/headtree/internal/tree"
)

// CSVParser reads one bracketed tree per row. The column headed "tree" is
// used when present, otherwise the last column.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) ([]*tree.Tree, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First row is headers.
	col := -1
	for i, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(h), "tree") {
			col = i
		}
	}

	var out []*tree.Tree
	for i, row := range records[1:] {
		if len(row) == 0 {
			continue
		}
		c := col
		if c < 0 || c >= len(row) {
			c = len(row) - 1
		}
		if strings.TrimSpace(row[c]) == "" {
			continue
		}
		ts, err := ReadTrees(row[c])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err) // 1-indexed, skip header
		}
		out = append(out, ts...)
	}
	return out, nil
}
