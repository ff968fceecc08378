package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/upkeep/internal/forms"
)

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.store.ListLocations(r.Context())
	if err != nil {
		storeError(w, r, err, "location")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": locations})
}

func (s *Server) handleGetLocation(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.GetLocation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, r, err, "location")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var l forms.Location
	if err := decodeJSON(r, &l); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "request body is not valid JSON")
		return
	}
	if err := forms.ValidateLocation(l); err != nil {
		ValidationError(w, r, err.Error(), nil)
		return
	}
	created, err := s.store.CreateLocation(r.Context(), l)
	if err != nil {
		storeError(w, r, err, "location")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateLocation(w http.ResponseWriter, r *http.Request) {
	var l forms.Location
	if err := decodeJSON(r, &l); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "request body is not valid JSON")
		return
	}
	l.ID = chi.URLParam(r, "id")
	if err := forms.ValidateLocation(l); err != nil {
		ValidationError(w, r, err.Error(), nil)
		return
	}
	updated, err := s.store.UpdateLocation(r.Context(), l)
	if err != nil {
		storeError(w, r, err, "location")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteLocation(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteLocation(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, r, err, "location")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
