// Package api serves the account brief HTTP endpoints.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/account-brief/internal/metrics"
	"github.com/sells-group/account-brief/internal/model"
)

// Briefs generates briefs and search summaries for a domain.
type Briefs interface {
	Generate(ctx context.Context, domain string) (*model.Brief, error)
	Search(ctx context.Context, domain string) (*model.SearchSummary, error)
}

// CRM writes a brief to the CRM.
type CRM interface {
	Push(ctx context.Context, req model.PushRequest) (*model.PushResult, error)
}

// Credentials reports whether each flow's provider credentials are configured.
// It is consulted on every request so a missing key fails only the routes
// that need it.
type Credentials interface {
	RequireSearch() error
	RequireGenerate() error
	RequirePush() error
}

// Server holds the handler dependencies.
type Server struct {
	briefs      Briefs
	crm         CRM
	creds       Credentials
	metrics     *metrics.Metrics
	corsOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records request metrics and exposes GET /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// New creates a Server.
func New(briefs Briefs, crm CRM, creds Credentials, opts ...Option) *Server {
	s := &Server{
		briefs:      briefs,
		crm:         crm,
		creds:       creds,
		corsOrigins: []string{"*"},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Routes returns the router. Brief routes are served both at the root and
// under /api.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID},
		MaxAge:         300,
	}))

	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	mount := func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Post("/generate-brief", s.handleGenerateBrief)
		r.Post("/push-hubspot", s.handlePushHubSpot)
		r.Post("/search-sustainability", s.handleSearch)
	}
	mount(r)
	r.Route("/api", mount)

	return r
}
