package manifest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parsing is best-effort throughout: PDF-derived markdown is noisy, so
// missing structure yields empty lists and an empty title, never an
// error. Re-parsing byte-identical markdown must reproduce identical
// asset IDs, since agents reference them externally.

var (
	// GFM pipe tables: header row, separator row, one or more data
	// rows. The asset extractor relies on this exact pattern for its
	// independent re-scan; keep the two in lockstep.
	tablePattern = regexp.MustCompile(`\|[^\n]+\|\n\|[-:| ]+\|\n(?:\|[^\n]+\|\n?)+`)

	pagePattern    = regexp.MustCompile(`<!-- Page (\d+) -->`)
	headerPattern  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	boldPattern    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	slugPattern    = regexp.MustCompile(`[^a-z0-9]`)
	titleH1Pattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)
)

// Source carries everything one manifest is generated from: the
// extracted markdown plus collaborator-supplied figures, page count,
// optional pre-extracted tables and enrichment entities.
type Source struct {
	DocID        string
	Filename     string
	Markdown     string
	Figures      []FigureAsset
	PageCount    int
	MarkdownPath string
	Entities     []string
	Tables       []TableAsset // pre-extracted; nil means parse from markdown
}

// Generate builds the complete manifest for one document.
func Generate(src Source) *Manifest {
	tables := src.Tables
	if len(tables) == 0 {
		tables = ParseTables(src.Markdown)
	}

	sections := ParseSections(src.Markdown)

	var toc []string
	for _, s := range sections {
		if s.Level <= 2 {
			toc = append(toc, s.Title)
		}
	}

	entities := src.Entities
	if entities == nil {
		entities = []string{}
	}

	now := time.Now().UTC()
	return &Manifest{
		DocID:    src.DocID,
		Filename: src.Filename,
		Title:    DetectTitle(src.Markdown),
		TOC:      toc,
		Assets: DocumentAssets{
			Tables:   tables,
			Figures:  src.Figures,
			Sections: sections,
		},
		Entities:     entities,
		PageCount:    src.PageCount,
		CreatedAt:    now,
		UpdatedAt:    now,
		MarkdownPath: src.MarkdownPath,
	}
}

// ParseTables scans markdown for pipe-table blocks and assigns
// sequential tab_{n} IDs in document order.
func ParseTables(markdown string) []TableAsset {
	var tables []TableAsset

	for i, loc := range tablePattern.FindAllStringIndex(markdown, -1) {
		tableText := markdown[loc[0]:loc[1]]

		var rows []string
		for _, r := range strings.Split(strings.TrimSpace(tableText), "\n") {
			if strings.TrimSpace(r) != "" {
				rows = append(rows, r)
			}
		}

		// Header counts as a row; the separator does not.
		rowCount := len(rows) - 1
		colCount := 0
		if len(rows) > 0 {
			colCount = strings.Count(rows[0], "|") - 1
			if colCount < 0 {
				colCount = 0
			}
		}

		preview := tableText
		if len(preview) > 100 {
			preview = preview[:100]
		}
		preview = strings.ReplaceAll(preview, "\n", " ")

		tables = append(tables, TableAsset{
			ID:        fmt.Sprintf("tab_%d", i+1),
			Page:      pageAtOffset(markdown, loc[0]),
			Preview:   preview,
			Markdown:  tableText,
			RowCount:  rowCount,
			ColCount:  colCount,
			HasHeader: true,
			Source:    "markdown",
		})
	}

	return tables
}

// ParseSections walks the markdown line by line, turning ATX headings
// into sections. Page markers update the page attribution and are never
// treated as heading candidates.
func ParseSections(markdown string) []SectionAsset {
	var sections []SectionAsset
	lines := strings.Split(markdown, "\n")
	currentPage := 1

	for i, line := range lines {
		if pm := pagePattern.FindStringSubmatch(line); pm != nil {
			currentPage, _ = strconv.Atoi(pm[1])
			continue
		}

		hm := headerPattern.FindStringSubmatch(line)
		if hm == nil {
			continue
		}
		level := len(hm[1])
		title := strings.TrimSpace(boldPattern.ReplaceAllString(strings.TrimSpace(hm[2]), "$1"))
		if title == "" {
			continue
		}

		// End at the next heading of the same or a shallower level.
		endLine := len(lines)
		for j := i + 1; j < len(lines); j++ {
			if next := headerPattern.FindStringSubmatch(lines[j]); next != nil && len(next[1]) <= level {
				endLine = j
				break
			}
		}

		sections = append(sections, SectionAsset{
			ID:        sectionID(title),
			Title:     title,
			Level:     level,
			Page:      currentPage,
			StartLine: i,
			EndLine:   endLine,
			Preview:   sectionPreview(lines, i, endLine),
		})
	}

	return sections
}

// sectionID derives the stable slug: lowercased title with every
// non-alphanumeric byte replaced by underscore, capped at 30 chars.
func sectionID(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "_")
	if len(slug) > 30 {
		slug = slug[:30]
	}
	return "sec_" + slug
}

// sectionPreview joins up to four non-empty content lines after the
// heading, capped at 200 chars.
func sectionPreview(lines []string, headingLine, endLine int) string {
	stop := headingLine + 5
	if stop > endLine {
		stop = endLine
	}
	var parts []string
	for _, ln := range lines[headingLine+1 : stop] {
		ln = strings.TrimSpace(ln)
		if ln == "" || strings.HasPrefix(ln, "<!--") {
			continue
		}
		parts = append(parts, ln)
	}
	preview := strings.Join(parts, " ")
	if len(preview) > 200 {
		preview = preview[:200]
	}
	return preview
}

// pageAtOffset returns the page of the last marker before the given
// byte offset, defaulting to page 1.
func pageAtOffset(markdown string, offset int) int {
	page := 1
	for _, m := range pagePattern.FindAllStringSubmatch(markdown[:offset], -1) {
		page, _ = strconv.Atoi(m[1])
	}
	return page
}

// DetectTitle picks the first H1 heading, falling back to the first
// non-empty, non-comment line capped at 100 chars.
func DetectTitle(markdown string) string {
	if m := titleH1Pattern.FindStringSubmatch(markdown); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "<!--") {
			if len(line) > 100 {
				line = line[:100]
			}
			return line
		}
	}
	return ""
}
