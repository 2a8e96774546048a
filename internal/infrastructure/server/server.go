package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/silverbridge24/silverbridge-backend/internal/config"
)

// Server represents HTTP server
type Server struct {
	httpServer *http.Server
	config     *config.ServerConfig
	log        *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.ServerConfig, router *gin.Engine, log *logrus.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:        router,
			ReadTimeout:    cfg.ReadTimeout,
			WriteTimeout:   cfg.WriteTimeout,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
		config: cfg,
		log:    log,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.WithField("addr", s.httpServer.Addr).Info("starting server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("server stopped")
	return nil
}
