package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/paw-chain/pawswap/x/amm/keeper"
)

// Server exposes a read-only HTTP surface over a set of pools: reserve and
// ownership queries, quoting, health and metrics.
type Server struct {
	router *gin.Engine
	config *Config
	pools  map[string]*keeper.Keeper
	logger log.Logger
}

// Config holds server configuration
type Config struct {
	Host            string
	Port            string
	CORSOrigins     []string
	RateLimitRPS    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            "5000",
		CORSOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		RateLimitRPS:    100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// NewServer creates a new API server over the given pools, keyed by pool
// identity.
func NewServer(pools map[string]*keeper.Keeper, config *Config, logger log.Logger) (*Server, error) {
	if len(pools) == 0 {
		return nil, fmt.Errorf("at least one pool is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	server := &Server{
		config: config,
		pools:  pools,
		logger: logger.With("component", "api"),
	}
	server.setupRouter()
	return server, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// Recovery first so panics in later middleware are caught too.
	s.router.Use(gin.Recovery())
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(s.CORSMiddleware())
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/pools", s.handleListPools)
		v1.GET("/pools/:pool_id", s.handleGetPool)
		v1.GET("/pools/:pool_id/quote", s.handleQuote)
		v1.GET("/pools/:pool_id/events", s.handleGetEvents)
	}
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"pools":     len(s.pools),
	})
}

// Start runs the HTTP server until the context is cancelled, then shuts it
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:        s.router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
