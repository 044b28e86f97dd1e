// Package parser reads constituency trees out of treebank files and the
// document formats people paste them into.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/headtree/internal/tree"
)

// Parser extracts the bracketed trees held in a document.
type Parser interface {
	Parse(r io.Reader, filename string) ([]*tree.Tree, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".mrg":      true,
	".tree":     true,
	".penn":     true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
	".xml":      true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mrg", ".tree", ".penn", ".txt":
		return &PennParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".xml":
		return &AlpinoParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// readBlocks reads the trees in each text block in order.
func readBlocks(blocks []string) ([]*tree.Tree, error) {
	var out []*tree.Tree
	for i, b := range blocks {
		ts, err := ReadTrees(b)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		out = append(out, ts...)
	}
	return out, nil
}
