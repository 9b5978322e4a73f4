package extract

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
)

var textPagePattern = regexp.MustCompile(`<!--\s*Page\s+(\d+)\s*-->`)

// TextExtractor passes markdown and plain text through unchanged.
// If the input already carries page markers, the highest marker number
// becomes the page count.
type TextExtractor struct{}

func (p *TextExtractor) Extract(r io.Reader, filename string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	text := string(data)

	pageCount := 1
	for _, m := range textPagePattern.FindAllStringSubmatch(text, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil && n > pageCount {
			pageCount = n
		}
	}

	return &Result{
		Markdown:  text,
		PageCount: pageCount,
	}, nil
}
