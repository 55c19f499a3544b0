package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kumarabd/gokit/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config contains configuration for the dashboard HTTP server
type Config struct {
	Host         string        `json:"host" yaml:"host" default:"0.0.0.0"`
	Port         string        `json:"port" yaml:"port" default:"8080"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout" default:"30s"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" default:"30s"`
	IdleTimeout  time.Duration `json:"idle_timeout" yaml:"idle_timeout" default:"60s"`
	DashboardDir string        `json:"dashboard_dir" yaml:"dashboard_dir" default:"dashboard"`
}

// HTTP serves the generated dashboard pages plus health and metrics
// endpoints.
type HTTP struct {
	handler   *gin.Engine
	log       *logger.Handler
	config    *Config
	server    *http.Server
	isRunning bool
	mu        sync.RWMutex
}

// NewHTTP creates a new dashboard server instance
func NewHTTP(config *Config, l *logger.Handler) *HTTP {
	gin.SetMode(gin.ReleaseMode)

	server := &HTTP{
		handler: gin.New(),
		log:     l,
		config:  config,
	}

	server.handler.Use(gin.Recovery())
	server.handler.Use(server.loggingMiddleware())

	server.setupRoutes()

	return server
}

// Start starts the HTTP server
func (s *HTTP) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("HTTP server is already running")
	}

	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.isRunning = true
	s.log.Info().Msgf("Starting dashboard server on %s", addr)

	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server
func (s *HTTP) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning || s.server == nil {
		return nil
	}

	s.log.Info().Msg("Shutting down dashboard server...")

	if err := s.server.Shutdown(ctx); err != nil {
		s.log.Error().Err(err).Msg("Error during HTTP server shutdown")
		return err
	}

	s.isRunning = false
	s.log.Info().Msg("Dashboard server stopped")
	return nil
}

// IsRunning returns true if the HTTP server is currently running
func (s *HTTP) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetHandler returns the gin engine for adding routes
func (s *HTTP) GetHandler() *gin.Engine {
	return s.handler
}

// setupRoutes wires the dashboard, health, and metrics endpoints
func (s *HTTP) setupRoutes() {
	s.handler.StaticFile("/", s.config.DashboardDir+"/index.html")
	s.handler.Static("/tools", s.config.DashboardDir+"/tools")
	s.handler.StaticFile("/index.html", s.config.DashboardDir+"/index.html")

	s.handler.GET("/healthz", s.healthHandler)
	s.handler.GET("/metrics", s.metricsHandler)
}

// healthHandler handles health check endpoint
func (s *HTTP) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// metricsHandler handles metrics endpoint
func (s *HTTP) metricsHandler(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}

// loggingMiddleware adds request logging
func (s *HTTP) loggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		if s.log != nil {
			s.log.Info().
				Str("method", param.Method).
				Str("path", param.Path).
				Int("status", param.StatusCode).
				Dur("latency", param.Latency).
				Str("client_ip", param.ClientIP).
				Msg("HTTP Request")
		}
		return ""
	})
}
