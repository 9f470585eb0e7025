// Package live serves popovers over WebSocket: each connection gets
// its own popover instance driven by client event frames, with state
// patches pushed back as JSON. It also exposes a server-side rendered
// demo page, health and Prometheus endpoints.
package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	popover "github.com/vango-dev/popover"
	"github.com/vango-dev/popover/pkg/dom"
	"github.com/vango-dev/popover/pkg/interaction"
)

// Config configures the live server.
type Config struct {
	// Addr is the listen address (default ":3000").
	Addr string

	// Logger is the structured logger (default slog.Default()).
	Logger *slog.Logger

	// Registry is the Prometheus registry (default a fresh one).
	Registry *prometheus.Registry

	// Popover builds the configuration for each new session. Defaults
	// to a hover demo popover.
	Popover func() popover.Config

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration
}

// Server is the live popover HTTP/WebSocket server.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	metrics  *Metrics
	registry *prometheus.Registry
	tracer   trace.Tracer
	upgrader websocket.Upgrader
	http     *http.Server
}

// NewServer creates a server from cfg, applying defaults for unset
// fields.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":3000"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.Popover == nil {
		cfg.Popover = demoConfig
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger,
		metrics:  NewMetrics(cfg.Registry),
		registry: cfg.Registry,
		tracer:   otel.Tracer("popover-live"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.http = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.routes(),
	}
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWS)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()
	s.logger.Info("live popover server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleIndex serves a server-side rendered snapshot of the demo
// popover target, for eyeballing the markup.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	pop, err := popover.New(s.cfg.Popover(), popover.WithLogger(s.logger))
	if err != nil {
		s.logger.Error("demo popover config invalid", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer pop.Dispose()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html><html><body>"))
	w.Write([]byte(dom.RenderToString(pop.Render().Target)))
	w.Write([]byte("</body></html>"))
}

// handleWS upgrades the connection and runs a session on it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.metrics.WSErrors.WithLabelValues("upgrade").Inc()
		return
	}

	sess, err := NewSession(conn, s.cfg.Popover(), s.logger, s.metrics, s.tracer)
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		conn.Close()
		return
	}
	sess.Run(r.Context())
}

// demoConfig is the default per-session popover.
func demoConfig() popover.Config {
	return popover.Config{
		InteractionKind: interaction.Hover,
		Target:          dom.Button("Hover me"),
		Content: dom.Div(
			dom.Text("Hello from the server. "),
			dom.Button(dom.Dismiss(), "Got it"),
		),
	}
}
