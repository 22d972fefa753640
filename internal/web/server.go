// Package web serves the landing page as HTML, next to a JSON view of the
// release state, a health probe and Prometheus metrics.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/caioricciuti/quicklook-landing/internal/content"
	"github.com/caioricciuti/quicklook-landing/internal/logger"
	"github.com/caioricciuti/quicklook-landing/internal/metrics"
	"github.com/caioricciuti/quicklook-landing/internal/release"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

var funcs = template.FuncMap{
	"byteSize":     release.FormatByteSize,
	"relativeTime": release.FormatRelativeTime,
	"count":        release.FormatCount,
	"inc":          func(i int) int { return i + 1 },
}

var pageTemplate = template.Must(
	template.New("index.html.tmpl").Funcs(funcs).ParseFS(templateFS, "templates/index.html.tmpl"),
)

// Server renders the landing page for one release provider
type Server struct {
	provider    *release.Provider
	releasesURL string
	metrics     *metrics.Metrics
	addr        string
	router      chi.Router
}

// Option configures a Server
type Option func(*Server)

// WithMetrics records request metrics and exposes them on /metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithAddr sets the listen address
func WithAddr(addr string) Option {
	return func(s *Server) {
		s.addr = addr
	}
}

// New creates a server. The provider is started by Run.
func New(provider *release.Provider, releasesURL string, opts ...Option) *Server {
	s := &Server{
		provider:    provider,
		releasesURL: releasesURL,
		addr:        "127.0.0.1:8080",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/api/release", s.handleRelease)
	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}
	return r
}

// Handler returns the router for mounting or testing
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the release fetch and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	s.provider.Start(ctx)
	defer s.provider.Stop()

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving landing page on http://%s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("page server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down page server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down page server: %w", err)
		}
		return nil
	}
}

type pageData struct {
	ProductName   string
	Tagline       string
	Headline      string
	Lead          string
	Summary       string
	FeaturesTitle string
	FeaturesLead  string
	PluginsPrompt string
	InstallTitle  string
	InstallLead   string
	RepoURL       string
	PluginsURL    string
	DocsURL       string
	ReleasesURL   string
	Features      []content.Feature
	Steps         []content.Step
	Requirements  []string
	FooterLinks   []content.LinkGroup
	State         release.ViewState
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		ProductName:   content.ProductName,
		Tagline:       content.Tagline,
		Headline:      content.Headline,
		Lead:          content.Lead,
		Summary:       content.Summary,
		FeaturesTitle: content.FeaturesTitle,
		FeaturesLead:  content.FeaturesLead,
		PluginsPrompt: content.PluginsPrompt,
		InstallTitle:  content.InstallTitle,
		InstallLead:   content.InstallLead,
		RepoURL:       content.RepoURL,
		PluginsURL:    content.PluginsURL,
		DocsURL:       content.DocsURL,
		ReleasesURL:   s.releasesURL,
		Features:      content.Features,
		Steps:         content.Steps,
		Requirements:  content.Requirements,
		FooterLinks:   content.FooterLinks,
		State:         s.provider.Snapshot(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.Error("Failed to render page: %v", err)
	}
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.provider.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	state := s.provider.Snapshot()
	status := "ok"
	switch {
	case state.IsLoading:
		status = "loading"
	case state.Failed():
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}

// logRequests writes one debug line per request and feeds request metrics
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		logger.Debug("%s %s -> %d (%s) [%s]", r.Method, r.URL.Path, status, elapsed, middleware.GetReqID(r.Context()))
		if s.metrics != nil {
			s.metrics.ObserveRequest(route, status, elapsed)
		}
	})
}
