package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/mkravets/upkeep/internal/conditions"
	"github.com/mkravets/upkeep/internal/forms"
	"github.com/mkravets/upkeep/internal/store"
	"github.com/mkravets/upkeep/internal/telemetry"
	"github.com/mkravets/upkeep/internal/webhook"
)

// Server owns the HTTP surface: template CRUD, field-state resolution,
// submissions, locations, and assets.
type Server struct {
	store       store.Store
	engine      *conditions.Engine
	events      Sink
	log         zerolog.Logger
	adminAPIKey string
	rateLimit   int

	snapshot atomic.Pointer[forms.Snapshot]
}

// Sink receives mutation events for webhook delivery. Satisfied by
// *webhook.Dispatcher; nil disables delivery.
type Sink interface {
	Dispatch(event webhook.Event)
}

// Options carries the request-handling knobs pulled from config.
type Options struct {
	AdminAPIKey string
	RateLimit   int // requests per minute per IP, 0 disables
}

// NewServer wires the HTTP layer. events may be nil when webhook delivery
// is not configured.
func NewServer(st store.Store, engine *conditions.Engine, events Sink, log zerolog.Logger, opts Options) *Server {
	s := &Server{
		store:       st,
		engine:      engine,
		events:      events,
		log:         log.With().Str("component", "api").Logger(),
		adminAPIKey: opts.AdminAPIKey,
		rateLimit:   opts.RateLimit,
	}
	s.snapshot.Store(forms.BuildSnapshot(nil))
	return s
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))
	r.Use(telemetry.Middleware)
	r.Use(s.requestLogger)
	if s.rateLimit > 0 {
		r.Use(httprate.LimitByIP(s.rateLimit, time.Minute))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		// public reads plus submission intake
		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/snapshot", s.handleSnapshot)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Post("/templates/{id}/resolve", s.handleResolve)
		r.Get("/templates/{id}/submissions", s.handleListSubmissions)
		r.Post("/templates/{id}/submissions", s.handleCreateSubmission)
		r.Get("/submissions/{id}", s.handleGetSubmission)
		r.Get("/locations", s.handleListLocations)
		r.Get("/locations/{id}", s.handleGetLocation)
		r.Get("/assets", s.handleListAssets)
		r.Get("/assets/{id}", s.handleGetAsset)

		// admin (protected): mutations
		r.Group(func(r chi.Router) {
			r.Use(s.authAdmin)
			r.Post("/templates", s.handleCreateTemplate)
			r.Put("/templates/{id}", s.handleUpdateTemplate)
			r.Delete("/templates/{id}", s.handleDeleteTemplate)
			r.Delete("/submissions/{id}", s.handleDeleteSubmission)
			r.Post("/locations", s.handleCreateLocation)
			r.Put("/locations/{id}", s.handleUpdateLocation)
			r.Delete("/locations/{id}", s.handleDeleteLocation)
			r.Post("/assets", s.handleCreateAsset)
			r.Put("/assets/{id}", s.handleUpdateAsset)
			r.Delete("/assets/{id}", s.handleDeleteAsset)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RebuildSnapshot reloads all templates and swaps the atomic snapshot
// served to form renderers.
func (s *Server) RebuildSnapshot(ctx context.Context) error {
	templates, err := s.store.ListTemplates(ctx)
	if err != nil {
		return err
	}
	snap := forms.BuildSnapshot(templates)
	s.snapshot.Store(snap)
	telemetry.SnapshotTemplates.Set(float64(len(snap.Templates)))
	return nil
}

// Snapshot returns the currently served snapshot.
func (s *Server) Snapshot() *forms.Snapshot {
	return s.snapshot.Load()
}

// dispatch forwards a mutation event to the sink, if one is configured.
func (s *Server) dispatch(eventType, resourceType, resourceID string, data any) {
	if s.events == nil {
		return
	}
	s.events.Dispatch(webhook.Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Resource:  webhook.Resource{Type: resourceType, ID: resourceID},
		Data:      data,
	})
}

// ---- middleware ----

func (s *Server) authAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			UnauthorizedError(w, r, "missing bearer token")
			return
		}
		got := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if got == "" {
			UnauthorizedError(w, r, "missing bearer token")
			return
		}
		// constant-time compare
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.adminAPIKey)) != 1 {
			ForbiddenError(w, r, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
