// Package bootstrap handles application initialization and lifecycle
// management for the content-hub service.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/resolver"
	"github.com/pukadigital/content-hub/internal/telemetry"
)

const version = "dev"

// Start initializes and runs the content-hub application.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Setup cache backend and optional event publisher
	store, err := SetupCache(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up cache: %w", err)
	}

	publisher := SetupEventPublisher(cfg, log)

	// Phase 3: Build the resolution pipeline
	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)

	res := resolver.New(resolver.Config{
		Tenant:    cfg.Content.Tenant,
		Gateway:   SetupGateway(cfg, log),
		Fallback:  SetupFallback(log),
		Cache:     store,
		Publisher: publisher,
		Metrics:   metrics,
		Logger:    log,
	})

	// Phase 4: Setup and run HTTP server
	server := SetupHTTPServer(cfg, res, store, metrics, log)

	log.Info("Starting content-hub",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
		logger.String("tenant", cfg.Content.Tenant),
		logger.String("cache_backend", cfg.Content.CacheBackend),
	)

	if runErr := server.Run(context.Background()); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
