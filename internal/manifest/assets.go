package manifest

import (
	"strings"
	"time"
)

// TableAsset is a pipe table located in the document markdown.
// RowCount counts the header plus data rows; the separator row is
// excluded. IDs are assigned sequentially in document order (tab_1,
// tab_2, ...) and are stable across re-parses of the same markdown.
type TableAsset struct {
	ID        string `json:"id"`
	Page      int    `json:"page"`
	Caption   string `json:"caption"`
	Preview   string `json:"preview"`
	Markdown  string `json:"markdown"`
	RowCount  int    `json:"row_count"`
	ColCount  int    `json:"col_count"`
	HasHeader bool   `json:"has_header"`
	Source    string `json:"source"`
}

// FigureAsset is an image extracted from the document. Path is an
// opaque handle resolved by the document store; IDs follow the
// fig_{page}_{indexOnPage} convention.
type FigureAsset struct {
	ID      string `json:"id"`
	Page    int    `json:"page"`
	Path    string `json:"path"`
	Ext     string `json:"ext"`
	Caption string `json:"caption"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Source  string `json:"source"`
}

// SectionAsset is a heading-delimited span of the document markdown.
// EndLine is exclusive: the line of the next heading at the same or a
// shallower level, or the number of lines in the document.
type SectionAsset struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Level     int    `json:"level"`
	Page      int    `json:"page"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Preview   string `json:"preview"`
}

// DocumentAssets groups every addressable asset of one document, in
// document order.
type DocumentAssets struct {
	Tables   []TableAsset   `json:"tables"`
	Figures  []FigureAsset  `json:"figures"`
	Sections []SectionAsset `json:"sections"`
}

// FindTable returns the table with the given ID, or nil.
func (a *DocumentAssets) FindTable(tableID string) *TableAsset {
	for i := range a.Tables {
		if a.Tables[i].ID == tableID {
			return &a.Tables[i]
		}
	}
	return nil
}

// FindFigure returns the figure with the given ID, or nil.
func (a *DocumentAssets) FindFigure(figureID string) *FigureAsset {
	for i := range a.Figures {
		if a.Figures[i].ID == figureID {
			return &a.Figures[i]
		}
	}
	return nil
}

// FindSection matches by section ID or, failing that, by
// case-insensitive title.
func (a *DocumentAssets) FindSection(idOrTitle string) *SectionAsset {
	search := strings.ToLower(idOrTitle)
	for i := range a.Sections {
		if strings.ToLower(a.Sections[i].ID) == search || strings.ToLower(a.Sections[i].Title) == search {
			return &a.Sections[i]
		}
	}
	return nil
}

// Summary returns per-type asset counts.
func (a *DocumentAssets) Summary() map[string]int {
	return map[string]int{
		"tables":   len(a.Tables),
		"figures":  len(a.Figures),
		"sections": len(a.Sections),
	}
}

// Manifest is the navigable map of one processed document: its assets,
// table of contents, and metadata. Built once per ingestion; only the
// path fields are set later, by the store at persistence time.
type Manifest struct {
	DocID    string `json:"doc_id"`
	Filename string `json:"filename"`
	Title    string `json:"title"`

	TOC    []string       `json:"toc"`
	Assets DocumentAssets `json:"assets"`

	// Entity names returned by the knowledge-graph collaborator,
	// passed through unmodified.
	Entities []string `json:"lightrag_entities"`

	PageCount int       `json:"page_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	MarkdownPath string `json:"markdown_path"`
	ManifestPath string `json:"manifest_path"`
}

// Summary condenses a manifest for document listings.
type Summary struct {
	DocID        string    `json:"doc_id"`
	Filename     string    `json:"filename"`
	Title        string    `json:"title"`
	PageCount    int       `json:"page_count"`
	TableCount   int       `json:"table_count"`
	FigureCount  int       `json:"figure_count"`
	SectionCount int       `json:"section_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Summarize builds the listing view of this manifest.
func (m *Manifest) Summarize() Summary {
	return Summary{
		DocID:        m.DocID,
		Filename:     m.Filename,
		Title:        m.Title,
		PageCount:    m.PageCount,
		TableCount:   len(m.Assets.Tables),
		FigureCount:  len(m.Assets.Figures),
		SectionCount: len(m.Assets.Sections),
		CreatedAt:    m.CreatedAt,
	}
}
