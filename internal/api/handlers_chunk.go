package api

import (
	"encoding/json"
	"net/http"

	"github.com/dgallion1/docatlas/internal/chunk"
)

// ChunkRequest is the body for POST /api/chunk: chunk arbitrary text
// without ingesting it, for previewing strategy behavior.
type ChunkRequest struct {
	Text         string `json:"text"`
	Filename     string `json:"filename,omitempty"`
	Strategy     string `json:"strategy,omitempty"`
	ChunkSize    int    `json:"chunk_size,omitempty"`
	ChunkOverlap int    `json:"chunk_overlap,omitempty"`
}

func (s *Server) handleChunkPreview(w http.ResponseWriter, r *http.Request) {
	var req ChunkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		jsonError(w, "text is required", http.StatusBadRequest)
		return
	}

	var override *chunk.Config
	if req.ChunkSize > 0 {
		cfg := chunk.DefaultConfig()
		cfg.ChunkSize = req.ChunkSize
		if req.ChunkOverlap > 0 {
			cfg.ChunkOverlap = req.ChunkOverlap
		}
		override = &cfg
	}

	docType := chunk.DetectDocumentType(req.Text, req.Filename)
	chunks := chunk.SmartChunk(req.Text, req.Filename, req.Strategy, override)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document_type": docType,
		"chunk_count":   len(chunks),
		"chunks":        chunks,
	})
}
