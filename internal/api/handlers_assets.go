package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/docatlas/internal/asset"
	"github.com/dgallion1/docatlas/internal/manifest"
	"github.com/dgallion1/docatlas/internal/render"
	"github.com/go-chi/chi/v5"
)

// handleGetAsset resolves one asset of a document. Text assets support
// ?format=html; figures support ?raw=true for the bare image bytes.
func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	assetType := chi.URLParam(r, "assetType")
	assetID := chi.URLParam(r, "assetID")

	if !manifest.ValidDocID(docID) {
		jsonError(w, "invalid doc_id", http.StatusBadRequest)
		return
	}

	res, err := s.assets.Fetch(docID, assetType, assetID)
	if err != nil {
		var notFound *asset.ErrDocumentNotFound
		if errors.As(err, &notFound) {
			jsonError(w, err.Error(), http.StatusNotFound)
			return
		}
		jsonError(w, "failed to fetch asset: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !res.Found {
		jsonError(w, "asset not found: "+assetID, http.StatusNotFound)
		return
	}

	if res.AssetType == asset.TypeFigure {
		s.writeFigure(w, r, res)
		return
	}
	s.writeTextAsset(w, r, res)
}

func (s *Server) writeFigure(w http.ResponseWriter, r *http.Request, res *asset.Result) {
	if r.URL.Query().Get("raw") == "true" {
		w.Header().Set("Content-Type", res.MediaType)
		w.Write(res.Data)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"asset_type": res.AssetType,
		"asset_id":   res.AssetID,
		"media_type": res.MediaType,
		"data":       base64.StdEncoding.EncodeToString(res.Data),
		"figure":     res.Figure,
	})
}

func (s *Server) writeTextAsset(w http.ResponseWriter, r *http.Request, res *asset.Result) {
	content := res.Markdown
	format := "markdown"

	if r.URL.Query().Get("format") == "html" {
		html, err := render.HTML(content)
		if err != nil {
			jsonError(w, "failed to render: "+err.Error(), http.StatusInternalServerError)
			return
		}
		content = html
		format = "html"
	}

	payload := map[string]any{
		"asset_type": res.AssetType,
		"asset_id":   res.AssetID,
		"format":     format,
		"content":    content,
	}
	if res.Table != nil {
		payload["table"] = res.Table
	}
	if res.Section != nil {
		payload["section"] = res.Section
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
