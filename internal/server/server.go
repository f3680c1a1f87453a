// Package server exposes conversion, ingest and record queries over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/hkreporter/internal/ingest"
	"github.com/claude/hkreporter/internal/models"
	"github.com/claude/hkreporter/internal/observability"
	"github.com/claude/hkreporter/internal/storage"
)

// Store is the read side of record storage used by the handlers.
type Store interface {
	QueryRecords(ctx context.Context, f storage.RecordFilter) ([]models.RecordRow, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*models.RecordRow, error)
	GetDataStats(ctx context.Context) (*storage.DataStats, error)
	QueryIngestLogs(ctx context.Context, limit int) ([]models.IngestLog, error)
	Ping(ctx context.Context) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	db      Store
	ingest  *ingest.Provider
	metrics *observability.Metrics
	whois   WhoIser
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured. metrics may be nil.
func New(db Store, provider *ingest.Provider, metrics *observability.Metrics, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		db:      db,
		ingest:  provider,
		metrics: metrics,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(Instrument(s.metrics))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/ingest/", s.handleIngest)
		r.Post("/api/v1/kinds/{kind}/records", s.handleStoreRecord)
	})

	// Stateless conversion
	s.router.Post("/api/v1/harmonize/{kind}", s.handleHarmonize)
	s.router.Post("/api/v1/dehydrate/{kind}", s.handleDehydrate)

	// Read endpoints (no auth, tsnet handles access)
	s.router.Get("/api/v1/records", s.handleQueryRecords)
	s.router.Get("/api/v1/records/{id}", s.handleGetRecord)
	s.router.Get("/api/v1/kinds", s.handleKinds)
	s.router.Get("/api/v1/stats", s.handleStats)
	s.router.Get("/api/v1/ingest/logs", s.handleIngestLogs)
	s.router.Get("/api/v1/me", s.handleMe)
	s.router.Get("/healthz", s.handleHealth)
}

// MountMetrics serves the Prometheus registry at path.
func (s *Server) MountMetrics(path string) {
	if s.metrics == nil {
		return
	}
	s.router.Handle(path, s.metrics.Handler())
}

// SetTailscale resolves request identities through the tailnet.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

func (s *Server) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.whois != nil {
			TailscaleIdentity(s.whois, s.log)(next).ServeHTTP(w, r)
			return
		}
		DevIdentity(next).ServeHTTP(w, r)
	})
}
