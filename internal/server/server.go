// Package server assembles the HTTP + WebSocket API: route registration, the
// middleware chain, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/profxlabs/fxterm/internal/domain"
	"github.com/profxlabs/fxterm/internal/server/handler"
	"github.com/profxlabs/fxterm/internal/server/middleware"
	"github.com/profxlabs/fxterm/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
	APIKey      string // empty disables auth

	// AnalysisRate limits POST /api/analysis per client IP per minute; the
	// limiter may be nil, in which case the route is unthrottled.
	AnalysisRate    int
	AnalysisLimiter domain.RateLimiter
}

// Handlers aggregates the HTTP handlers the server registers.
type Handlers struct {
	Health      *handler.HealthHandler
	Status      *handler.StatusHandler
	Instruments *handler.InstrumentHandler
	Orders      *handler.OrderHandler
	Analysis    *handler.AnalysisHandler
	Sessions    *handler.SessionHandler
}

// Server is the terminal's HTTP + WebSocket API server.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a Server with all routes registered and the middleware
// chain (auth, logging, CORS) applied.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// Health check (no auth required for the probe path itself; auth applies
	// chain-wide, so deployments with an API key must pass it here too).
	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	mux.HandleFunc("GET /api/status", handlers.Status.GetStatus)

	mux.HandleFunc("GET /api/instruments", handlers.Instruments.ListInstruments)
	mux.HandleFunc("GET /api/instrument", handlers.Instruments.GetInstrument)
	mux.HandleFunc("POST /api/instrument/select", handlers.Instruments.SelectInstrument)

	mux.HandleFunc("GET /api/orders", handlers.Orders.ListOrders)
	mux.HandleFunc("POST /api/orders", handlers.Orders.PlaceOrder)
	mux.HandleFunc("DELETE /api/orders/{id}", handlers.Orders.CloseOrder)
	mux.HandleFunc("POST /api/orders/close-all", handlers.Orders.CloseAll)

	// The analysis trigger fronts a paid backend, so it carries its own
	// per-client rate limit on top of the engine's single-flight guard.
	requestAnalysis := http.Handler(http.HandlerFunc(handlers.Analysis.RequestAnalysis))
	if cfg.AnalysisLimiter != nil && cfg.AnalysisRate > 0 {
		requestAnalysis = middleware.RateLimit(cfg.AnalysisLimiter, cfg.AnalysisRate, time.Minute)(requestAnalysis)
	}
	mux.Handle("POST /api/analysis", requestAnalysis)
	mux.HandleFunc("GET /api/analysis", handlers.Analysis.GetAnalysis)

	mux.HandleFunc("GET /api/sessions", handlers.Sessions.ListSessions)

	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	var h http.Handler = mux
	h = middleware.Auth(cfg.APIKey)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      h,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
