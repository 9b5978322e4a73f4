package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docatlas/internal/manifest"
	"github.com/dgallion1/docatlas/internal/render"
	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists all stored documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.store.List()
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": summaries})
}

// handleGetManifest returns the full manifest of one document.
func (s *Server) handleGetManifest(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !manifest.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}

	m, err := s.store.LoadManifest(docID)
	if err != nil {
		jsonError(w, "failed to load manifest: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if m == nil {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m)
}

// handleGetFullText returns a document's full markdown, optionally
// rendered as HTML with ?format=html.
func (s *Server) handleGetFullText(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !manifest.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}

	markdown, ok, err := s.store.LoadMarkdown(docID)
	if err != nil {
		jsonError(w, "failed to load document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		html, err := render.HTML(markdown)
		if err != nil {
			jsonError(w, "failed to render: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(markdown))
}

// handleDeleteDocument removes a document and everything stored for it.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if !manifest.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}

	if !s.store.Exists(docID) {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}
	if err := s.store.Delete(docID); err != nil {
		jsonError(w, "failed to delete: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"doc_id": docID, "deleted": true})
}
