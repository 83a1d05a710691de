package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/aalemi-dev/live-events/liveevents"
	"github.com/aalemi-dev/live-events/metrics"
	"github.com/aalemi-dev/live-events/tracer"
	"github.com/gin-gonic/gin"
)

// Server is the HTTP relay: it accepts events over HTTP and hands them to a
// liveevents.Poster.
//
// Routes:
//
//	POST /v1/events  202 accepted, 400 invalid, 401 bad key, 413 too large, 503 queue full
//	GET  /health     200 while the process runs
//	GET  /ready      200 while the worker dispatches, 503 otherwise
type Server struct {
	cfg       Config
	poster    liveevents.Poster
	readiness Readiness
	logger    Logger
	tracer    tracer.Tracer

	requests  metrics.Counter
	durations metrics.Histogram

	engine *gin.Engine

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewServer builds the router. The server does not listen until Start.
func NewServer(cfg Config, poster liveevents.Poster) (*Server, error) {
	if poster == nil {
		return nil, fmt.Errorf("%w: poster is required", ErrInvalidConfig)
	}
	cfg = cfg.withDefaults()
	gin.SetMode(cfg.Mode)

	s := &Server{cfg: cfg, poster: poster}
	s.engine = s.routes()
	return s, nil
}

// WithLogger attaches a logger for request and lifecycle logging.
func (s *Server) WithLogger(logger Logger) *Server {
	s.logger = logger
	return s
}

// WithReadiness sets what GET /ready reports. Without one the relay is
// always ready.
func (s *Server) WithReadiness(r Readiness) *Server {
	s.readiness = r
	return s
}

// WithTracer starts a span per request, continuing any trace context sent
// by the caller. The live events client then copies it into record headers.
func (s *Server) WithTracer(t tracer.Tracer) *Server {
	s.tracer = t
	return s
}

// WithMetrics registers http_requests_total and
// http_request_duration_seconds on collector.
func (s *Server) WithMetrics(collector metrics.MetricsCollector) *Server {
	s.requests = collector.CreateCounter("http_requests_total", "HTTP requests handled by the relay", []string{"route", "status"})
	s.durations = collector.CreateHistogram("http_request_duration_seconds", "HTTP request latency of the relay", []string{"route"}, nil)
	return s
}

// Handler returns the router, for tests and for embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start binds the listen address and serves in the background. Bind errors
// are returned synchronously.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return ErrServerStarted
	}

	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}

	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
	s.server = srv
	s.listener = ln

	s.logInfo(ctx, "HTTP relay listening", map[string]interface{}{"address": ln.Addr().String()})
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logError(context.Background(), "HTTP relay stopped unexpectedly", err, nil)
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting requests and waits for in-flight ones, bounded
// by ctx and Config.ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	s.logInfo(ctx, "Shutting down HTTP relay", nil)
	return srv.Shutdown(ctx)
}

func (s *Server) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.DebugWithContext(ctx, msg, nil, fields)
	}
}

func (s *Server) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (s *Server) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.WarnWithContext(ctx, msg, err, fields)
	}
}

func (s *Server) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
