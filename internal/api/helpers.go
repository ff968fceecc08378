package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkravets/upkeep/internal/store"
)

// maxBodySize caps request bodies at 1 MiB; form templates and submissions
// are small documents.
const maxBodySize = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, enforcing the body size cap.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

// storeError maps store errors onto HTTP responses.
func storeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	if errors.Is(err, store.ErrNotFound) {
		NotFoundError(w, r, resource+" not found")
		return
	}
	InternalError(w, r, "storage operation failed")
}
