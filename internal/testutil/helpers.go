package testutil

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mkravets/upkeep/internal/api"
	"github.com/mkravets/upkeep/internal/conditions"
	"github.com/mkravets/upkeep/internal/forms"
	"github.com/mkravets/upkeep/internal/store"
)

// NewTestServer creates a test server with an in-memory store. Webhook
// delivery is disabled.
func NewTestServer(t *testing.T, adminKey string) (*api.Server, *store.MemoryStore) {
	t.Helper()
	memStore := store.NewMemoryStore()
	server := api.NewServer(memStore, conditions.NewEngine(), nil, zerolog.Nop(), api.Options{
		AdminAPIKey: adminKey,
	})
	return server, memStore
}

// HTTPRequest is a helper for making test HTTP requests.
type HTTPRequest struct {
	Method  string
	Path    string
	Body    string
	Headers map[string]string
}

// Do executes the HTTP request and returns the response recorder.
func (r *HTTPRequest) Do(t *testing.T, handler http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if r.Body != "" {
		body = bytes.NewBufferString(r.Body)
	}
	req := httptest.NewRequest(r.Method, r.Path, body)
	if r.Body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// SeedTemplates populates the store with test templates.
func SeedTemplates(ctx context.Context, st store.Store, templates []forms.Template) ([]forms.Template, error) {
	created := make([]forms.Template, 0, len(templates))
	for _, tpl := range templates {
		out, err := st.CreateTemplate(ctx, tpl)
		if err != nil {
			return nil, err
		}
		created = append(created, *out)
	}
	return created, nil
}
