// Package asset resolves agent-facing asset fetches: given a document,
// an asset type and an ID, it returns the exact content from storage.
package asset

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docatlas/internal/manifest"
	"github.com/dgallion1/docatlas/internal/storage"
)

// Asset type names accepted by Fetch.
const (
	TypeTable    = "table"
	TypeFigure   = "figure"
	TypeSection  = "section"
	TypeFullText = "full_text"
)

// Result is one resolved asset. Exactly one of Markdown or Data is
// set: Markdown for text assets, Data plus MediaType for figures.
// Found is false when the document exists but the asset does not.
type Result struct {
	Found     bool
	AssetType string
	AssetID   string

	Markdown  string
	Data      []byte
	MediaType string

	Table   *manifest.TableAsset
	Figure  *manifest.FigureAsset
	Section *manifest.SectionAsset
}

// Service looks assets up against the document store.
type Service struct {
	store *storage.Store
}

func NewService(store *storage.Store) *Service {
	return &Service{store: store}
}

// ErrDocumentNotFound reports a doc ID with no stored manifest.
type ErrDocumentNotFound struct {
	DocID string
}

func (e *ErrDocumentNotFound) Error() string {
	return fmt.Sprintf("document not found: %s", e.DocID)
}

// Fetch resolves one asset. An unknown asset ID yields Found=false,
// not an error; errors mean the document itself is missing or storage
// failed.
func (s *Service) Fetch(docID, assetType, assetID string) (*Result, error) {
	m, err := s.store.LoadManifest(docID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &ErrDocumentNotFound{DocID: docID}
	}

	switch assetType {
	case TypeTable:
		return s.fetchTable(m, assetID)
	case TypeFigure:
		return s.fetchFigure(m, assetID)
	case TypeSection:
		return s.fetchSection(m, assetID)
	case TypeFullText:
		return s.fetchFullText(m)
	default:
		return nil, fmt.Errorf("unknown asset type: %s", assetType)
	}
}

func (s *Service) fetchTable(m *manifest.Manifest, tableID string) (*Result, error) {
	tab := m.Assets.FindTable(tableID)
	if tab == nil {
		return &Result{AssetType: TypeTable, AssetID: tableID}, nil
	}

	text := tab.Markdown
	if text == "" {
		markdown, ok, err := s.store.LoadMarkdown(m.DocID)
		if err != nil {
			return nil, err
		}
		if ok {
			text, _ = manifest.ExtractTable(markdown, tableID)
		}
	}

	return &Result{
		Found:     true,
		AssetType: TypeTable,
		AssetID:   tableID,
		Markdown:  text,
		Table:     tab,
	}, nil
}

func (s *Service) fetchFigure(m *manifest.Manifest, figureID string) (*Result, error) {
	fig := m.Assets.FindFigure(figureID)
	if fig == nil {
		return &Result{AssetType: TypeFigure, AssetID: figureID}, nil
	}

	data, ext, err := s.store.LoadImage(m.DocID, figureID)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return &Result{AssetType: TypeFigure, AssetID: figureID}, nil
	}

	return &Result{
		Found:     true,
		AssetType: TypeFigure,
		AssetID:   figureID,
		Data:      data,
		MediaType: mediaTypeForExt(ext),
		Figure:    fig,
	}, nil
}

func (s *Service) fetchSection(m *manifest.Manifest, idOrTitle string) (*Result, error) {
	sec := m.Assets.FindSection(idOrTitle)
	if sec == nil {
		return &Result{AssetType: TypeSection, AssetID: idOrTitle}, nil
	}

	markdown, ok, err := s.store.LoadMarkdown(m.DocID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Result{AssetType: TypeSection, AssetID: idOrTitle}, nil
	}

	return &Result{
		Found:     true,
		AssetType: TypeSection,
		AssetID:   sec.ID,
		Markdown:  manifest.ExtractSection(markdown, *sec),
		Section:   sec,
	}, nil
}

func (s *Service) fetchFullText(m *manifest.Manifest) (*Result, error) {
	markdown, ok, err := s.store.LoadMarkdown(m.DocID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Result{AssetType: TypeFullText}, nil
	}
	return &Result{
		Found:     true,
		AssetType: TypeFullText,
		Markdown:  markdown,
	}, nil
}

func mediaTypeForExt(ext string) string {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	default:
		return "image/png"
	}
}
