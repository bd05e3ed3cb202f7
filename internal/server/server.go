// Package server exposes variant input resolution over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KarchinLab/open-cravat-extras/internal/config"
	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

// Server is the HTTP front end for a Resolver.
type Server struct {
	config     *config.Config
	resolver   *resolve.Resolver
	assembly   variant.Assembly
	cache      *ResolutionCache
	limiter    *ClientLimiter
	logger     *zap.Logger
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer creates a server; a nil logger disables logging.
func NewServer(cfg *config.Config, r *resolve.Resolver, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		config:   cfg,
		resolver: r,
		assembly: cfg.DefaultAssembly(),
		cache:    NewResolutionCache(cfg.Server.CacheTTL),
		logger:   logger,
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = NewClientLimiter(cfg.Server.RateLimit, cfg.Server.Burst)
	}

	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router = gin.New()

	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.loggerMiddleware())
	s.router.Use(s.recoveryMiddleware())
	s.router.Use(s.corsMiddleware())
	if s.limiter != nil {
		s.router.Use(s.rateLimitMiddleware())
	}

	s.router.GET("/hello", s.helloHandler)
	s.router.GET("/examples", s.examplesHandler)
	s.router.POST("/resolve", s.resolveHandler)
	s.router.POST("/resolve_all", s.resolveAllHandler)
	s.router.GET("/report", s.reportHandler)
}

// Start listens on the configured port and blocks until the server stops.
func (s *Server) Start() error {
	address := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.Info("starting server", zap.String("address", address))

	s.httpServer = &http.Server{
		Addr:         address,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down server")
	s.cache.Flush()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine (useful for testing).
func (s *Server) Router() *gin.Engine {
	return s.router
}
