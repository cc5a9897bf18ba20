package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yourusername/reversiengine/pkg/engine"
)

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host             string        // Host to bind to (default "localhost")
	Port             int           // Port to listen on (default 8080)
	ReadTimeout      time.Duration // Read timeout (default 30s)
	WriteTimeout     time.Duration // Write timeout (default 5m, self-play can be slow)
	IdleTimeout      time.Duration // Idle timeout (default 60s)
	MaxSearchWorkers int           // Max concurrent searches (default 64)
	MaxMatchWorkers  int           // Max concurrent self-play matches (default 2)
}

// DefaultConfig returns a ServerConfig with sensible defaults.
func DefaultConfig() ServerConfig {
	pool := DefaultPoolConfig()
	return ServerConfig{
		Host:             "localhost",
		Port:             8080,
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     5 * time.Minute,
		IdleTimeout:      60 * time.Second,
		MaxSearchWorkers: pool.MaxSearchWorkers,
		MaxMatchWorkers:  pool.MaxMatchWorkers,
	}
}

// Server is the HTTP API server.
type Server struct {
	config   ServerConfig
	engine   *engine.Engine
	handlers *Handlers
	server   *http.Server
	pool     *WorkerPool
	version  string
}

// NewServer creates a new API server.
func NewServer(e *engine.Engine, config ServerConfig, version string) *Server {
	pool := NewWorkerPool(PoolConfig{
		MaxSearchWorkers: config.MaxSearchWorkers,
		MaxMatchWorkers:  config.MaxMatchWorkers,
	})

	return &Server{
		config:   config,
		engine:   e,
		handlers: NewHandlersWithPool(e, version, pool),
		pool:     pool,
		version:  version,
	}
}

// Pool returns the worker pool for monitoring.
func (s *Server) Pool() *WorkerPool {
	return s.pool
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handlers.Health)
		r.Post("/move", s.handlers.Move)
		r.Post("/evaluate", s.handlers.Evaluate)
		r.Post("/legal", s.handlers.Legal)
		r.Post("/selfplay", s.handlers.SelfPlay)
		r.Get("/selfplay/stream", s.handlers.SelfPlayStream)
		r.Get("/ws", s.handlers.WebSocket)
	})

	return r
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Printf("Starting reversi API server v%s on %s (depth %d)", s.version, addr, s.engine.Depth())
	log.Printf("Endpoints:")
	log.Printf("  GET  /api/health           - Health check")
	log.Printf("  POST /api/move             - Choose a move")
	log.Printf("  POST /api/evaluate         - Static evaluation")
	log.Printf("  POST /api/legal            - Legal placements")
	log.Printf("  POST /api/selfplay         - Engine self-play match")
	log.Printf("  GET  /api/selfplay/stream  - Self-play with SSE progress")
	log.Printf("  WS   /api/ws               - WebSocket for interactive play")

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// ListenAndServeWithGracefulShutdown starts the server and handles shutdown signals.
func (s *Server) ListenAndServeWithGracefulShutdown() error {
	errChan := make(chan error, 1)

	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		log.Printf("Received signal %v, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped gracefully")
	return nil
}
