// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"toski_backend/internal/common"
	"toski_backend/internal/config"
	"toski_backend/internal/jobs"
	"toski_backend/internal/match"
	"toski_backend/internal/middleware"
	"toski_backend/internal/moxfield"
	"toski_backend/internal/platform/metrics"
	"toski_backend/internal/profile"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthChecker reports whether the profile store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	deckAuditJob *jobs.DeckAuditJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	registry *metrics.Registry,
	health HealthChecker,
	profileHandler *profile.Handler,
	moxfieldHandler *moxfield.Handler,
	matchHandler *match.Handler,
	deckAuditJob *jobs.DeckAuditJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	common.RegisterValidators()

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.ErrorHandler(logger))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(registry))
	}

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.AccessTokenHeader, common.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Length", common.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	tokenMW := middleware.RequireAccessToken(logger.Named("AccessTokenMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := health.Ping(ctx); err != nil {
			common.RespondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(registry.Handler()))
	}

	root := router.Group("")
	profileHandler.RegisterRoutes(root, tokenMW)
	moxfieldHandler.RegisterRoutes(root)
	matchHandler.RegisterRoutes(root)

	router.NoRoute(middleware.NoRoute)
	router.NoMethod(middleware.NoMethod)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:   httpServer,
		router:       router,
		cfg:          cfg,
		logger:       logger,
		deckAuditJob: deckAuditJob,
	}, nil
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if s.deckAuditJob != nil {
		if err := s.deckAuditJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start deck audit job", zap.Error(err))
		}
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

// Shutdown stops the scheduler first so no audit run starts against a closing store.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.deckAuditJob != nil {
		s.deckAuditJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
