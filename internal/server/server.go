package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/bootstrap"
	"github.com/seojin/tastemap/internal/config"
)

// Server represents the HTTP server for the application
type Server struct {
	router *gin.Engine
	config *config.Config
	dbPool *pgxpool.Pool
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
}

// NewServer creates and configures a new server instance
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, err
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool, lgr)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	server := &Server{
		router: router,
		config: cfg,
		dbPool: dbPool,
		deps:   deps,
		logger: lgr,
	}

	if err := server.setupStaticFileServing(); err != nil {
		dbPool.Close()
		return nil, err
	}

	return server, nil
}

// setupStaticFileServing exposes uploaded files over HTTP
func (s *Server) setupStaticFileServing() error {
	storagePath := s.config.Server.StoragePath
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		s.logger.Error().Err(err).Str("path", storagePath).Msg("Failed to create storage directory")
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	s.router.Static("/uploads", storagePath)
	s.logger.Info().Str("path", storagePath).Msg("Static file serving configured at /uploads")
	return nil
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	addr := ":" + s.config.Server.Port
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		serverErrors <- httpServer.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
			if closeErr := httpServer.Close(); closeErr != nil {
				return fmt.Errorf("could not stop server: %w", closeErr)
			}
		}
	}

	s.shutdownDependencies()
	s.logger.Info().Msg("Server stopped")
	return nil
}

// shutdownDependencies releases resources held by the server
func (s *Server) shutdownDependencies() {
	if s.deps.Producer != nil {
		if err := s.deps.Producer.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close event producer")
		}
	}

	if err := s.deps.Sessions.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to close session store")
	}

	s.dbPool.Close()
	s.logger.Info().Msg("Database connection closed")
}
