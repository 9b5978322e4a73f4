// Package storage persists processed documents on disk. Each document
// owns one directory under the data root:
//
//	{data_dir}/{doc_id}/{doc_id}_full.md
//	{data_dir}/{doc_id}/{doc_id}_manifest.json
//	{data_dir}/{doc_id}/images/{figure_id}.{ext}
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/docatlas/internal/manifest"
)

var imageExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

// Store reads and writes document artifacts under a single root
// directory.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) docDir(docID string) string {
	return filepath.Join(s.root, docID)
}

// MarkdownPath returns where a document's full markdown lives.
func (s *Store) MarkdownPath(docID string) string {
	return filepath.Join(s.docDir(docID), docID+"_full.md")
}

// ManifestPath returns where a document's manifest lives.
func (s *Store) ManifestPath(docID string) string {
	return filepath.Join(s.docDir(docID), docID+"_manifest.json")
}

// Exists reports whether a document directory is present.
func (s *Store) Exists(docID string) bool {
	_, err := os.Stat(s.docDir(docID))
	return err == nil
}

// SaveMarkdown writes the full markdown for a document.
func (s *Store) SaveMarkdown(docID, markdown string) error {
	if err := os.MkdirAll(s.docDir(docID), 0o755); err != nil {
		return fmt.Errorf("create doc dir: %w", err)
	}
	if err := os.WriteFile(s.MarkdownPath(docID), []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// LoadMarkdown reads the full markdown for a document. A missing
// document returns ("", false, nil).
func (s *Store) LoadMarkdown(docID string) (string, bool, error) {
	data, err := os.ReadFile(s.MarkdownPath(docID))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read markdown: %w", err)
	}
	return string(data), true, nil
}

// SaveManifest writes the manifest, filling in its storage paths first.
func (s *Store) SaveManifest(m *manifest.Manifest) error {
	if err := os.MkdirAll(s.docDir(m.DocID), 0o755); err != nil {
		return fmt.Errorf("create doc dir: %w", err)
	}
	m.MarkdownPath = s.MarkdownPath(m.DocID)
	m.ManifestPath = s.ManifestPath(m.DocID)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(m.ManifestPath, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest. A missing document returns (nil, nil).
func (s *Store) LoadManifest(docID string) (*manifest.Manifest, error) {
	data, err := os.ReadFile(s.ManifestPath(docID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// SaveImage writes one figure image under the document's images dir.
func (s *Store) SaveImage(docID, figureID, ext string, data []byte) (string, error) {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	if ext == "" {
		ext = "png"
	}
	dir := filepath.Join(s.docDir(docID), "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}
	path := filepath.Join(dir, figureID+"."+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path, nil
}

// LoadImage finds a figure image by trying the known extensions.
// Returns the bytes and the extension that matched.
func (s *Store) LoadImage(docID, figureID string) ([]byte, string, error) {
	dir := filepath.Join(s.docDir(docID), "images")
	for _, ext := range imageExtensions {
		path := filepath.Join(dir, figureID+"."+ext)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, ext, nil
		}
		if !os.IsNotExist(err) {
			return nil, "", fmt.Errorf("read image: %w", err)
		}
	}
	return nil, "", nil
}

// List returns summaries of every stored document, sorted by doc ID.
// Directories without a readable manifest are skipped.
func (s *Store) List() ([]manifest.Summary, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	summaries := []manifest.Summary{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m, err := s.LoadManifest(e.Name())
		if err != nil || m == nil {
			continue
		}
		summaries = append(summaries, m.Summarize())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].DocID < summaries[j].DocID
	})
	return summaries, nil
}

// Delete removes a document and everything under it.
func (s *Store) Delete(docID string) error {
	if err := os.RemoveAll(s.docDir(docID)); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
