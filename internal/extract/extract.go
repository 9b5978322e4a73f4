package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docatlas/internal/manifest"
)

// Figure is one raw image record produced by an extraction backend.
// Index is the 1-based running index on its page.
type Figure struct {
	Page    int
	Index   int
	Data    []byte
	Ext     string
	Width   int
	Height  int
	Caption string
}

// Result is the extraction output contract: markdown text with
// `<!-- Page N -->` markers interleaved, the page count, raw figure
// records, and, when the backend can produce them directly,
// pre-extracted tables. Pre-extracted tables take precedence over
// regex parsing downstream.
type Result struct {
	Markdown  string
	PageCount int
	Figures   []Figure
	Tables    []manifest.TableAsset
}

// Extractor converts raw document bytes into a Result.
type Extractor interface {
	Extract(r io.Reader, filename string) (*Result, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".html": true,
	".htm":  true,
	".csv":  true,
	".md":   true,
	".txt":  true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: true}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".csv":
		return &CSVExtractor{}, nil
	case ".md", ".txt":
		return &TextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
