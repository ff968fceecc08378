package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/upkeep/internal/conditions"
	"github.com/mkravets/upkeep/internal/forms"
	"github.com/mkravets/upkeep/internal/telemetry"
	"github.com/mkravets/upkeep/internal/webhook"
)

type createSubmissionRequest struct {
	Values      conditions.FormValues `json:"values"`
	SubmittedBy string                `json:"submittedBy,omitempty"`
	LocationID  string                `json:"locationId,omitempty"`
	AssetID     string                `json:"assetId,omitempty"`
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "id")
	if _, err := s.store.GetTemplate(r.Context(), templateID); err != nil {
		storeError(w, r, err, "template")
		return
	}
	subs, err := s.store.ListSubmissions(r.Context(), templateID)
	if err != nil {
		storeError(w, r, err, "submission")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"submissions": subs})
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	sub, err := s.store.GetSubmission(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, r, err, "submission")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// handleCreateSubmission validates a filled-out form against the template's
// current conditions. Required-ness is checked only for fields that are
// visible under the submitted values; hidden fields are exempt even when a
// require condition matches them.
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, r, err, "template")
		return
	}

	var req createSubmissionRequest
	if err := decodeJSON(r, &req); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "request body is not valid JSON")
		return
	}
	if req.Values == nil {
		req.Values = conditions.FormValues{}
	}

	fieldErrs := make(map[string]string)
	for name := range req.Values {
		if _, ok := t.FieldByName(name); !ok {
			fieldErrs[name] = "field does not exist in template"
		}
	}
	for _, f := range t.Fields {
		if !s.engine.FieldVisible(f.Name, req.Values, t.Conditions) {
			continue
		}
		required := f.Required || s.engine.FieldRequired(f.Name, req.Values, t.Conditions)
		if required && conditions.ValueOf(req.Values[f.Name]).IsEmpty() {
			fieldErrs[f.Name] = "field is required"
		}
	}
	if len(fieldErrs) > 0 {
		ValidationError(w, r, "submission failed validation", fieldErrs)
		return
	}

	created, err := s.store.CreateSubmission(r.Context(), forms.Submission{
		TemplateID:  t.ID,
		Values:      req.Values,
		SubmittedBy: req.SubmittedBy,
		LocationID:  req.LocationID,
		AssetID:     req.AssetID,
	})
	if err != nil {
		storeError(w, r, err, "submission")
		return
	}
	telemetry.SubmissionsCreated.Inc()
	s.dispatch(webhook.EventSubmissionCreated, "submission", created.ID, created)

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteSubmission(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSubmission(r.Context(), chi.URLParam(r, "id")); err != nil {
		storeError(w, r, err, "submission")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
