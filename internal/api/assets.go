package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/upkeep/internal/forms"
)

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.store.ListAssets(r.Context(), r.URL.Query().Get("location_id"))
	if err != nil {
		storeError(w, r, err, "asset")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assets": assets})
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.GetAsset(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, r, err, "asset")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var a forms.Asset
	if err := decodeJSON(r, &a); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "request body is not valid JSON")
		return
	}
	if a.Status == "" {
		a.Status = forms.AssetOperational
	}
	if err := forms.ValidateAsset(a); err != nil {
		ValidationError(w, r, err.Error(), nil)
		return
	}
	created, err := s.store.CreateAsset(r.Context(), a)
	if err != nil {
		storeError(w, r, err, "asset")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var a forms.Asset
	if err := decodeJSON(r, &a); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "request body is not valid JSON")
		return
	}
	a.ID = chi.URLParam(r, "id")
	if err := forms.ValidateAsset(a); err != nil {
		ValidationError(w, r, err.Error(), nil)
		return
	}
	updated, err := s.store.UpdateAsset(r.Context(), a)
	if err != nil {
		storeError(w, r, err, "asset")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAsset(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, r, err, "asset")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
