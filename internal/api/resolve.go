package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/upkeep/internal/conditions"
	"github.com/mkravets/upkeep/internal/telemetry"
)

type resolveRequest struct {
	Values conditions.FormValues `json:"values"`
}

type resolveResponse struct {
	TemplateID string                           `json:"templateId"`
	Version    int                              `json:"version"`
	Fields     map[string]conditions.FieldState `json:"fields"`
}

// handleResolve evaluates a template's conditions against the submitted
// values and returns the render state of every field. Form renderers call
// this on each value change.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, r, err, "template")
		return
	}

	var req resolveRequest
	if err := decodeJSON(r, &req); err != nil {
		BadRequestError(w, r, ErrCodeInvalidJSON, "request body is not valid JSON")
		return
	}
	if req.Values == nil {
		req.Values = conditions.FormValues{}
	}

	states := make(map[string]conditions.FieldState, len(t.Fields))
	for _, f := range t.Fields {
		state := s.engine.ResolveField(f.Name, req.Values, t.Conditions)
		// static required flags layer under the condition-driven state
		if f.Required {
			state.Required = true
		}
		states[f.Name] = state
	}
	telemetry.FieldResolutions.Inc()

	writeJSON(w, http.StatusOK, resolveResponse{
		TemplateID: t.ID,
		Version:    t.Version,
		Fields:     states,
	})
}
