// Package api implements gavtree's HTTP API.
//
// Routes:
//
//	GET  /healthz
//	GET  /metrics
//	GET  /api/maven/resolve?groupId=&artifactId=&version=&repos=
//	POST /api/maven/resolve/pom               (raw POM body)
//	POST /api/maven/resolve/pom/advanced      (JSON: pomContent, customRepositories, detectMultiModule)
//	POST /api/maven/resolve/upload            (multipart: file, repos, detectMultiModule)
//	GET  /api/maven/limits
//	GET  /api/maven/search?q=&page=&size=
//	GET  /api/maven/artifact/{groupId}/{artifactId}
//	GET  /api/maven/artifact/{groupId}/{artifactId}/{version}
//	GET  /api/security/{groupId}/{artifactId}/{version}
//	GET  /api/security/{groupId}/{artifactId}/{version}/assessment
//	GET  /api/security/{groupId}/{artifactId}/{version}/badge
//	GET  /api/security/{groupId}/{artifactId}/intelligence?versions=
//
// Errors are JSON objects {"error", "code", "requestId"} with the HTTP status
// derived from the error code.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gavtree/pkg/core/artifact"
	"github.com/matzehuels/gavtree/pkg/core/intel"
	"github.com/matzehuels/gavtree/pkg/integrations/maven"
	"github.com/matzehuels/gavtree/pkg/pipeline"
)

// Service is the subset of [pipeline.Runner] the API serves.
type Service interface {
	Resolve(ctx context.Context, opts pipeline.TreeOptions) (*pipeline.TreeResult, error)
	Info(ctx context.Context, group, artifactID, version string, refresh bool) (*maven.ArtifactInfo, error)
	Search(ctx context.Context, query string, page, size int, refresh bool) (*maven.SearchResult, error)
	Versions(ctx context.Context, group, artifactID string, refresh bool) ([]artifact.VersionRecord, error)
	Vulnerabilities(ctx context.Context, coordinate string) (*intel.Report, error)
	Assess(ctx context.Context, coordinate string) (*pipeline.VersionReport, error)
	Badge(ctx context.Context, coordinate string) (intel.Badge, error)
	Intelligence(ctx context.Context, group, artifactID string, limit int, refresh bool) (*intel.Intelligence, error)
}

var _ Service = (*pipeline.Runner)(nil)

// Options configures a [Server].
type Options struct {
	Logger         *log.Logger   // Request and error logging (default: discard)
	Metrics        http.Handler  // Served at /metrics when set
	RequestTimeout time.Duration // Per-request deadline (default: 2m)
}

// Server serves the API.
type Server struct {
	svc     Service
	logger  *log.Logger
	metrics http.Handler
	timeout time.Duration
}

// New creates a server backed by svc.
func New(svc Service, opts Options) *Server {
	s := &Server{svc: svc, logger: opts.Logger, metrics: opts.Metrics, timeout: opts.RequestTimeout}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.timeout <= 0 {
		s.timeout = 2 * time.Minute
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.timeout))

		r.Route("/api/maven", func(r chi.Router) {
			r.Get("/resolve", s.resolve)
			r.Post("/resolve/pom", s.resolvePOM)
			r.Post("/resolve/pom/advanced", s.resolvePOMAdvanced)
			r.Post("/resolve/upload", s.resolveUpload)
			r.Get("/limits", s.limits)
			r.Get("/search", s.search)
			r.Get("/artifact/{groupId}/{artifactId}", s.artifact)
			r.Get("/artifact/{groupId}/{artifactId}/{version}", s.artifact)
		})

		r.Route("/api/security/{groupId}/{artifactId}", func(r chi.Router) {
			r.Get("/intelligence", s.intelligence)
			r.Get("/{version}", s.vulnerabilities)
			r.Get("/{version}/assessment", s.assessment)
			r.Get("/{version}/badge", s.badge)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no such endpoint", Code: "NOT_FOUND", RequestID: RequestIDFrom(r.Context())})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
