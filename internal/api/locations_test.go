package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mkravets/upkeep/internal/forms"
)

func TestLocationLifecycle(t *testing.T) {
	srv, _ := newTestServer()
	handler := srv.Router()

	body := `{"name": "Plant A", "address": "1 Factory Rd", "latitude": 52.1, "longitude": 4.3}`
	rr := doRequest(handler, http.MethodPost, "/v1/locations", body, true)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var loc forms.Location
	json.NewDecoder(rr.Body).Decode(&loc)
	if loc.ID == "" {
		t.Fatal("Expected generated location ID")
	}

	rr = doRequest(handler, http.MethodPut, "/v1/locations/"+loc.ID, `{"name": "Plant A2", "latitude": 52.1, "longitude": 4.3}`, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(handler, http.MethodGet, "/v1/locations/"+loc.ID, "", false)
	var got forms.Location
	json.NewDecoder(rr.Body).Decode(&got)
	if got.Name != "Plant A2" {
		t.Errorf("Expected updated name, got %q", got.Name)
	}

	rr = doRequest(handler, http.MethodDelete, "/v1/locations/"+loc.ID, "", true)
	if rr.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rr.Code)
	}
}

func TestCreateLocation_InvalidCoordinates(t *testing.T) {
	srv, _ := newTestServer()
	handler := srv.Router()

	rr := doRequest(handler, http.MethodPost, "/v1/locations", `{"name": "Bad", "latitude": 99, "longitude": 0}`, true)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestAssetLifecycle(t *testing.T) {
	srv, _ := newTestServer()
	handler := srv.Router()

	locRR := doRequest(handler, http.MethodPost, "/v1/locations", `{"name": "Plant A", "latitude": 0, "longitude": 0}`, true)
	var loc forms.Location
	json.NewDecoder(locRR.Body).Decode(&loc)

	rr := doRequest(handler, http.MethodPost, "/v1/assets", `{"name": "Pump 7", "tag": "P-007", "locationId": "`+loc.ID+`"}`, true)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var asset forms.Asset
	json.NewDecoder(rr.Body).Decode(&asset)
	if asset.Status != forms.AssetOperational {
		t.Errorf("Expected default status operational, got %q", asset.Status)
	}

	// filtered listing
	doRequest(handler, http.MethodPost, "/v1/assets", `{"name": "Loose pump"}`, true)
	rr = doRequest(handler, http.MethodGet, "/v1/assets?location_id="+loc.ID, "", false)
	var resp struct {
		Assets []forms.Asset `json:"assets"`
	}
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp.Assets) != 1 {
		t.Errorf("Expected 1 asset at location, got %d", len(resp.Assets))
	}

	rr = doRequest(handler, http.MethodPut, "/v1/assets/"+asset.ID, `{"name": "Pump 7", "status": "maintenance"}`, true)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(handler, http.MethodDelete, "/v1/assets/"+asset.ID, "", true)
	if rr.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rr.Code)
	}
}

func TestCreateAsset_InvalidStatus(t *testing.T) {
	srv, _ := newTestServer()
	handler := srv.Router()

	rr := doRequest(handler, http.MethodPost, "/v1/assets", `{"name": "Pump", "status": "exploded"}`, true)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}
