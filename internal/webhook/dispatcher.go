package webhook

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkravets/upkeep/internal/telemetry"
)

const (
	// queueSize is the buffer size for the event queue.
	queueSize = 1000

	maxAttempts = 3
)

// SignatureHeader carries the HMAC of the request body.
const SignatureHeader = "X-Upkeep-Signature"

// Dispatcher delivers mutation events to a fixed set of endpoints
// configured at startup. Dispatch is non-blocking; delivery happens on a
// background worker with retry.
type Dispatcher struct {
	endpoints []string
	secret    string
	client    *http.Client
	log       zerolog.Logger
	queue     chan Event
	done      chan struct{}

	// mu guards closed so Dispatch never races a concurrent Close into
	// sending on the closed queue. Handlers still in flight during server
	// shutdown can call Dispatch after Close has run.
	mu     sync.RWMutex
	closed bool
}

// NewDispatcher creates a dispatcher for the given endpoints. With no
// endpoints configured the dispatcher still runs but every event is a no-op.
func NewDispatcher(endpoints []string, secret string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		endpoints: endpoints,
		secret:    secret,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("component", "webhook").Logger(),
		queue:     make(chan Event, queueSize),
		done:      make(chan struct{}),
	}
}

// Start begins processing events from the queue.
func (d *Dispatcher) Start() {
	go d.worker()
}

// Close shuts the dispatcher down after draining pending events. Safe to
// call multiple times.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
	return nil
}

// Dispatch queues an event for delivery without blocking the caller. Events
// are dropped when the queue is full or the dispatcher is closed.
func (d *Dispatcher) Dispatch(event Event) {
	if len(d.endpoints) == 0 {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		telemetry.WebhookDeliveries.WithLabelValues("dropped").Inc()
		return
	}

	select {
	case d.queue <- event:
	default:
		d.log.Warn().Str("event", event.Type).Str("resource", event.Resource.ID).
			Msg("webhook queue full, dropping event")
		telemetry.WebhookDeliveries.WithLabelValues("dropped").Inc()
	}
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for event := range d.queue {
		payload, err := json.Marshal(event)
		if err != nil {
			d.log.Error().Err(err).Str("event", event.Type).Msg("failed to marshal event")
			continue
		}
		for _, endpoint := range d.endpoints {
			d.deliverWithRetry(endpoint, payload, event)
		}
	}
}

func (d *Dispatcher) deliverWithRetry(endpoint string, payload []byte, event Event) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			// 1s, 2s backoff between attempts
			time.Sleep(time.Duration(attempt-1) * time.Second)
		}
		if err := d.deliver(endpoint, payload); err != nil {
			lastErr = err
			continue
		}
		telemetry.WebhookDeliveries.WithLabelValues("delivered").Inc()
		d.log.Debug().Str("event", event.Type).Str("endpoint", endpoint).
			Int("attempt", attempt).Msg("webhook delivered")
		return
	}
	telemetry.WebhookDeliveries.WithLabelValues("failed").Inc()
	d.log.Error().Err(lastErr).Str("event", event.Type).Str("endpoint", endpoint).
		Msg("webhook delivery failed after retries")
}

func (d *Dispatcher) deliver(endpoint string, payload []byte) error {
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, ComputeHMAC(payload, d.secret))

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &DeliveryError{Endpoint: endpoint, Status: resp.StatusCode}
	}
	return nil
}

// DeliveryError reports a non-2xx response from a webhook endpoint.
type DeliveryError struct {
	Endpoint string
	Status   int
}

func (e *DeliveryError) Error() string {
	return "webhook endpoint " + e.Endpoint + " returned status " + strconv.Itoa(e.Status)
}
