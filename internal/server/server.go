// Package server exposes the mask and currency engines over HTTP for form
// frontends, with a live activity stream for development dashboards.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/raaihank/maskform/internal/config"
	"github.com/raaihank/maskform/internal/events"
	"github.com/raaihank/maskform/internal/logger"
	"github.com/raaihank/maskform/internal/presets"
)

// Version is stamped by the build; handlers report it on /info.
var Version = "0.1.0"

// Server is the HTTP formatting service.
type Server struct {
	config  *config.Config
	logger  *logger.Logger
	router  *mux.Router
	server  *http.Server
	hub     *events.Hub
	presets *presets.Store
	limiter *clientLimiter
}

// New assembles the service. The preset store is optional: when Redis is
// unreachable the service starts without it and preset endpoints report
// unavailability instead of failing the whole process.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	s := &Server{
		config: cfg,
		logger: log.WithComponent("server"),
		router: mux.NewRouter(),
	}

	if cfg.Events.Enabled {
		s.hub = events.NewHub(cfg.Events.AllowedOrigins, log.WithComponent("events").Logger)
	}

	if cfg.Presets.Enabled {
		store, err := presets.NewStore(&presets.Config{
			RedisURL:       cfg.Presets.RedisURL,
			KeyPrefix:      cfg.Presets.KeyPrefix,
			TTL:            cfg.Presets.TTL,
			MaxConnections: cfg.Presets.MaxConnections,
			MinIdleConns:   cfg.Presets.MinIdleConns,
		}, log.WithComponent("presets").Logger)
		if err != nil {
			s.logger.Warn("Preset store unavailable, continuing without it", zap.Error(err))
		} else {
			s.presets = store
		}
	}

	if cfg.RateLimit.Enabled {
		s.limiter = newClientLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")

	if s.hub != nil {
		s.router.HandleFunc(s.config.Events.Path, s.hub.HandleWebSocket).Methods("GET")
	}

	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.rateLimitMiddleware)

	api.HandleFunc("/format/money", s.handleFormatMoney).Methods("POST")
	api.HandleFunc("/format/number", s.handleFormatNumber).Methods("POST")
	api.HandleFunc("/unformat", s.handleUnformat).Methods("POST")

	api.HandleFunc("/mask/match", s.handleMaskMatch).Methods("POST")
	api.HandleFunc("/mask/phone", s.handleMaskPhone).Methods("POST")
	api.HandleFunc("/mask/date", s.handleMaskDate).Methods("POST")
	api.HandleFunc("/mask/number", s.handleMaskNumber).Methods("POST")

	api.HandleFunc("/locales/{tag}", s.handleLocale).Methods("GET")

	api.HandleFunc("/defaults", s.handleGetDefaults).Methods("GET")
	api.HandleFunc("/defaults", s.handleSetDefaults).Methods("PUT")

	api.HandleFunc("/presets/{name}", s.handleGetPreset).Methods("GET")
	api.HandleFunc("/presets/{name}", s.handlePutPreset).Methods("PUT")
	api.HandleFunc("/presets/{name}", s.handleDeletePreset).Methods("DELETE")
}

// Start runs the event hub and serves HTTP. It blocks until the listener
// fails or Shutdown is called.
func (s *Server) Start() error {
	if s.hub != nil {
		go s.hub.Run()
	}

	s.logger.Info("Starting HTTP server",
		zap.Int("port", s.config.Server.Port),
		zap.Bool("events", s.hub != nil),
		zap.Bool("presets", s.presets != nil),
	)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and closes the preset store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")

	if s.presets != nil {
		if err := s.presets.Close(); err != nil {
			s.logger.Warn("Failed to close preset store", zap.Error(err))
		}
	}

	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
