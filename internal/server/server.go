package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/CoopTokenSim_Go/internal/handler"
	"github.com/osse101/CoopTokenSim_Go/internal/metrics"
	"github.com/osse101/CoopTokenSim_Go/internal/middleware"
)

// Options configures the HTTP surface
type Options struct {
	Port int

	// An empty APIKey disables authentication
	APIKey         string
	TrustedProxies []string
	RequestTimeout time.Duration
	RateLimit      int
}

// Handlers are the route handlers the server mounts
type Handlers struct {
	Simulation  *handler.SimulationHandler
	Projections *handler.ProjectionHandler
	Readiness   handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
}

// NewRouter builds the chi router with the full middleware stack
func NewRouter(opts Options, h Handlers) http.Handler {
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(opts.RateLimit, RateWindow)

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(opts.TrustedProxies, detector))
	if opts.APIKey != "" {
		r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	}
	r.Use(RequestSizeLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(middleware.AccessLog)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(h.Readiness))
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(opts.RequestTimeout))

		r.Post("/simulate", h.Simulation.HandleSimulate)
		r.Get("/scenarios", h.Simulation.HandleListScenarios)

		r.Route("/projections", func(r chi.Router) {
			r.Get("/", h.Projections.HandleListProjections)
			r.Post("/validate", h.Projections.HandleValidateProjection)
			r.Post("/compare", h.Projections.HandleCompareProjections)
		})
	})

	return r
}

// NewServer creates a new Server instance
func NewServer(opts Options, h Handlers) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, h),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Start starts the server and blocks until it stops
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
