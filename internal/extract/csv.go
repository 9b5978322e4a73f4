package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docatlas/internal/manifest"
)

// CSVExtractor renders CSV input as a single GFM pipe table. Because
// the backend knows the exact grid, it also supplies the table as a
// pre-extracted asset, bypassing the regex parser downstream.
type CSVExtractor struct{}

func (p *CSVExtractor) Extract(r io.Reader, filename string) (*Result, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	if len(records) == 0 {
		return &Result{PageCount: 1}, nil
	}

	headers := records[0]

	var buf strings.Builder
	writePipeRow(&buf, headers, len(headers))
	buf.WriteString("|")
	for range headers {
		buf.WriteString("---|")
	}
	buf.WriteString("\n")
	for _, row := range records[1:] {
		writePipeRow(&buf, row, len(headers))
	}
	tableText := buf.String()

	preview := tableText
	if len(preview) > 100 {
		preview = preview[:100]
	}
	preview = strings.ReplaceAll(preview, "\n", " ")

	table := manifest.TableAsset{
		ID:       "tab_1",
		Page:     1,
		Preview:  preview,
		Markdown: tableText,
		// Header counts as a row, matching the markdown parser's
		// convention.
		RowCount:  len(records),
		ColCount:  len(headers),
		HasHeader: true,
		Source:    "csv",
	}

	return &Result{
		Markdown:  tableText,
		PageCount: 1,
		Tables:    []manifest.TableAsset{table},
	}, nil
}

// writePipeRow emits one table row, padding or truncating to width
// cells and escaping cell-internal pipes.
func writePipeRow(buf *strings.Builder, cells []string, width int) {
	buf.WriteString("|")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(cells) {
			cell = strings.ReplaceAll(cells[i], "|", "\\|")
			cell = strings.ReplaceAll(cell, "\n", " ")
		}
		buf.WriteString(" ")
		buf.WriteString(cell)
		buf.WriteString(" |")
	}
	buf.WriteString("\n")
}
