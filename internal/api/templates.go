package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/upkeep/internal/forms"
	"github.com/mkravets/upkeep/internal/webhook"
)

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.ListTemplates(r.Context())
	if err != nil {
		storeError(w, r, err, "template")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, r, err, "template")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var t forms.Template
	if err := decodeJSON(r, &t); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "request body is not valid JSON")
		return
	}
	if err := forms.ValidateTemplate(t); err != nil {
		ValidationError(w, r, err.Error(), nil)
		return
	}

	created, err := s.store.CreateTemplate(r.Context(), t)
	if err != nil {
		storeError(w, r, err, "template")
		return
	}
	if err := s.RebuildSnapshot(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("snapshot rebuild failed")
	}
	s.dispatch(webhook.EventTemplateCreated, "template", created.ID, created)

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var t forms.Template
	if err := decodeJSON(r, &t); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "request body is not valid JSON")
		return
	}
	t.ID = chi.URLParam(r, "id")
	if err := forms.ValidateTemplate(t); err != nil {
		ValidationError(w, r, err.Error(), nil)
		return
	}

	updated, err := s.store.UpdateTemplate(r.Context(), t)
	if err != nil {
		storeError(w, r, err, "template")
		return
	}
	if err := s.RebuildSnapshot(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("snapshot rebuild failed")
	}
	s.dispatch(webhook.EventTemplateUpdated, "template", updated.ID, updated)

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.DeleteTemplate(r.Context(), id); err != nil {
		storeError(w, r, err, "template")
		return
	}
	if err := s.RebuildSnapshot(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("snapshot rebuild failed")
	}
	s.dispatch(webhook.EventTemplateDeleted, "template", id, nil)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot.Load()
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == snap.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", snap.ETag)
	writeJSON(w, http.StatusOK, snap)
}
