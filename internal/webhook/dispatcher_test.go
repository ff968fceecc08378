package webhook

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDispatcher_DeliversSignedEvent(t *testing.T) {
	var mu sync.Mutex
	var gotBody []byte
	var gotSig string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotBody = body
		gotSig = r.Header.Get(SignatureHeader)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := NewDispatcher([]string{srv.URL}, "test-secret", zerolog.Nop())
	d.Start()

	d.Dispatch(Event{
		Type:      EventSubmissionCreated,
		Timestamp: time.Now().UTC(),
		Resource:  Resource{Type: "submission", ID: "sub-1"},
	})
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if gotBody == nil {
		t.Fatal("endpoint never received the event")
	}
	var event Event
	if err := json.Unmarshal(gotBody, &event); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if event.Type != EventSubmissionCreated {
		t.Fatalf("event type = %q, want %q", event.Type, EventSubmissionCreated)
	}
	if !VerifySignature(gotBody, gotSig, "test-secret") {
		t.Fatal("delivered signature does not verify")
	}
}

func TestDispatcher_NoEndpointsIsNoop(t *testing.T) {
	d := NewDispatcher(nil, "", zerolog.Nop())
	d.Start()
	d.Dispatch(Event{Type: EventTemplateCreated})
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestDispatcher_DispatchAfterCloseIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	// Endpoints must be configured so Dispatch reaches the queue path.
	d := NewDispatcher([]string{srv.URL}, "test-secret", zerolog.Nop())
	d.Start()
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A handler still finishing during shutdown may dispatch after Close;
	// the event must be dropped without panicking on the closed queue.
	d.Dispatch(Event{
		Type:      EventTemplateUpdated,
		Timestamp: time.Now().UTC(),
		Resource:  Resource{Type: "template", ID: "tmpl-1"},
	})
}

func TestDispatcher_CloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(nil, "", zerolog.Nop())
	d.Start()
	if err := d.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
