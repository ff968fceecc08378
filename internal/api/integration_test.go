package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mkravets/upkeep/internal/conditions"
	"github.com/mkravets/upkeep/internal/forms"
	"github.com/mkravets/upkeep/internal/testutil"
)

// End-to-end flow over the public surface: seed a template, resolve field
// states as a renderer would, then submit.
func TestSubmissionFlow(t *testing.T) {
	srv, st := testutil.NewTestServer(t, "admin-key")
	handler := srv.Router()
	ctx := context.Background()

	seeded, err := testutil.SeedTemplates(ctx, st, []forms.Template{{
		Name: "Safety Walkthrough",
		Fields: []forms.Field{
			{Name: "area", Label: "Area", Type: forms.FieldText, Required: true},
			{Name: "hazard_found", Label: "Hazard found", Type: forms.FieldCheckbox},
			{Name: "hazard_details", Label: "Hazard details", Type: forms.FieldTextarea},
		},
		Conditions: []conditions.Condition{
			{
				FieldID: "hazard_details",
				Action:  conditions.ActionShow,
				Rules: []conditions.Rule{
					{Field: "hazard_found", Operator: conditions.OpEquals, Value: true},
				},
			},
			{
				FieldID: "hazard_details",
				Action:  conditions.ActionRequire,
				Rules: []conditions.Rule{
					{Field: "hazard_found", Operator: conditions.OpEquals, Value: true},
				},
			},
		},
	}})
	if err != nil {
		t.Fatalf("SeedTemplates: %v", err)
	}
	tpl := seeded[0]

	resolve := testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/v1/templates/" + tpl.ID + "/resolve",
		Body:   `{"values": {"hazard_found": true}}`,
	}
	rr := resolve.Do(t, handler)
	if rr.Code != http.StatusOK {
		t.Fatalf("resolve: expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resolved struct {
		Fields map[string]conditions.FieldState `json:"fields"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resolved); err != nil {
		t.Fatalf("decode resolve response: %v", err)
	}
	if state := resolved.Fields["hazard_details"]; !state.Visible || !state.Required {
		t.Fatalf("hazard_details should be visible and required, got %+v", state)
	}

	// details omitted while hazard_found is set: rejected
	submit := testutil.HTTPRequest{
		Method: http.MethodPost,
		Path:   "/v1/templates/" + tpl.ID + "/submissions",
		Body:   `{"values": {"area": "boiler room", "hazard_found": true}}`,
	}
	if rr := submit.Do(t, handler); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing hazard_details, got %d", rr.Code)
	}

	submit.Body = `{"values": {"area": "boiler room", "hazard_found": true, "hazard_details": "exposed wiring"}}`
	rr = submit.Do(t, handler)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var sub forms.Submission
	if err := json.NewDecoder(rr.Body).Decode(&sub); err != nil {
		t.Fatalf("decode submission: %v", err)
	}
	got, err := st.GetSubmission(ctx, sub.ID)
	if err != nil {
		t.Fatalf("GetSubmission: %v", err)
	}
	if got.TemplateID != tpl.ID {
		t.Errorf("stored submission template = %s, want %s", got.TemplateID, tpl.ID)
	}
}
