package bootstrap

import (
	"flag"
	"fmt"

	"github.com/pukadigital/content-hub/internal/config"
	"github.com/pukadigital/content-hub/internal/logger"
)

// LoadConfig loads configuration. Uses the -config flag with the
// CONFIG_PATH environment variable as the default.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "content-hub"),
		logger.String("version", version),
	), nil
}
