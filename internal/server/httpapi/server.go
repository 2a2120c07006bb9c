package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/staffkeeper/internal/logging"
	"github.com/dmitrijs2005/staffkeeper/internal/server/config"
)

// Server hosts the HTTP endpoint: route table, middleware chain, and
// graceful shutdown driven by context cancellation.
type Server struct {
	address string
	logger  logging.Logger
	handler http.Handler
}

func NewServer(cfg *config.Config, l logging.Logger, users UserService, employees EmployeeService) *Server {
	h := NewHandler(users, employees, cfg.UploadDir, l)

	registry := prometheus.NewRegistry()
	m := newMetrics(registry)
	secret := []byte(cfg.SecretKey)

	// open routes
	open := func(endpoint string, hf http.HandlerFunc) http.Handler {
		return m.withMetrics(endpoint, hf)
	}
	// routes that mutate directory state; gated when RequireAuth is set
	protected := func(endpoint string, hf http.HandlerFunc) http.Handler {
		return m.withMetrics(endpoint, withAuth(cfg.RequireAuth, secret, hf))
	}

	mux := http.NewServeMux()
	mux.Handle("POST /login", open("login", h.handleLogin))
	mux.Handle("POST /register", open("register", h.handleRegister))
	mux.Handle("POST /addEmployee", protected("addEmployee", h.handleAddEmployee))
	mux.Handle("GET /getEmployee", open("getEmployee", h.handleListEmployees))
	mux.Handle("DELETE /deleteEmployee", protected("deleteEmployee", h.handleDeleteEmployee))
	mux.Handle("GET /edit/{id}", open("getOne", h.handleGetEmployee))
	mux.Handle("PUT /edit/{id}", protected("edit", h.handleUpdateEmployee))
	mux.Handle("PUT /edit/status/{id}", protected("editStatus", h.handleUpdateStatus))
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	return &Server{
		address: cfg.EndpointAddr,
		logger:  l.With("module", "http_server"),
		handler: withRateLimit(limiter, mux),
	}
}

// Handler exposes the composed route table, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.handler,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
