package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/fredcamaral/lessondeck/internal/domain/entities"
	"github.com/fredcamaral/lessondeck/internal/domain/ports"
)

// Server implements the HTTPServer interface
type Server struct {
	server   *http.Server
	listener net.Listener
	decks    ports.DeckService
	config   *entities.ServerConfig
	logger   ports.Logger

	apiKeyConfigured func() bool
	stats            func() interface{}

	mu      sync.RWMutex
	running bool
}

// NewServer creates a new HTTP server
// config must not be nil - use config.GetDefaultConfig().Server if needed
func NewServer(decks ports.DeckService, config *entities.ServerConfig, logger ports.Logger) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}
	return &Server{
		decks:  decks,
		config: config,
		logger: logger,
		apiKeyConfigured: func() bool {
			return os.Getenv(entities.APIKeyEnv) != ""
		},
	}
}

// SetAPIKeyCheck replaces the check reported by the health endpoint
func (s *Server) SetAPIKeyCheck(check func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKeyConfigured = check
}

// SetStatsSource exposes the value returned by stats on GET /api/stats
func (s *Server) SetStatsSource(stats func() interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = stats
}

// Start binds the listen address and serves in the background
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server already running")
	}

	addr := s.config.Addr()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.listener = listener
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       s.config.GetReadTimeout(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.config.GetWriteTimeout(),
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.running = true

	go func(server *http.Server) {
		s.logger.Info("HTTP server starting on %s", listener.Addr())
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("HTTP server error: %v", err)
		}
	}(s.server)

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Addr returns the bound address, or "" before Start
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler returns the routed API wrapped in CORS and middleware
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/generate-slides", s.handleGenerateSlides).Methods(http.MethodPost)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if s.stats != nil {
		api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.GetCORSOrigins(),
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})

	// Apply middleware in order: cors -> security -> logging -> recovery
	handler := c.Handler(router)
	handler = securityHeadersMiddleware(handler)
	handler = createLoggingMiddleware(handler, s.logger)
	handler = createRecoveryMiddleware(handler, s.logger)

	return handler
}

var _ ports.HTTPServer = (*Server)(nil)
