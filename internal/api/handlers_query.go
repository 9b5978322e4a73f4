package api

import (
	"encoding/json"
	"net/http"
)

// QueryRequest is the body for POST /api/query, proxied to the
// knowledge graph.
type QueryRequest struct {
	Query string `json:"query"`
	Mode  string `json:"mode,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}

	rag := s.orchestrator.RAGClient()
	if !rag.Available(r.Context()) {
		jsonError(w, "lightrag unavailable", http.StatusServiceUnavailable)
		return
	}

	answer, err := rag.Query(r.Context(), req.Query, req.Mode)
	if err != nil {
		jsonError(w, "query failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"query":    req.Query,
		"mode":     req.Mode,
		"response": answer,
	})
}
