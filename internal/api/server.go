// Package api exposes audits over HTTP.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"trngaudit/app"
	"trngaudit/internal"
	"trngaudit/internal/config"
	"trngaudit/internal/metrics"
)

// Server represents the HTTP API
type Server struct {
	router  *chi.Mux
	service *app.AuditService
	metrics *metrics.Registry
	logger  *internal.Logger
	cfg     config.Config
}

// NewServer creates a new API server. cfg supplies the default alpha, min
// samples and body limit for audits submitted over HTTP.
func NewServer(service *app.AuditService, registry *metrics.Registry, logger *internal.Logger, cfg config.Config) *Server {
	if logger == nil {
		logger = internal.NopLogger()
	}
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		metrics: registry,
		logger:  logger,
		cfg:     cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

// setupRoutes configures HTTP routes
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	s.router.Route("/v1/audits", func(r chi.Router) {
		r.Post("/", s.handleCreateAudit)
		r.Get("/", s.handleListAudits)
		r.Get("/{id}", s.handleGetAudit)
	})
}

// ServeHTTP lets the server be mounted or tested directly
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves on the configured port until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting trngaudit API on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down API server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.With("request_id", middleware.GetReqID(r.Context())).
			Debug("%s %s -> %d (%d bytes) in %s", r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start))
	})
}
