package main

import (
	"errors"
	"fmt"

	"github.com/aatumaykin/cronplan/internal/config"
	"github.com/aatumaykin/cronplan/internal/constants"
	"github.com/aatumaykin/cronplan/internal/logger"
)

// loadConfig loads .env and the configuration, applies the command line
// overrides and validates the result. The default config path may be absent.
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnvOptional(envPath); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var (
		cfg *config.Config
		err error
	)
	if configPath == constants.DefaultConfigPath {
		cfg, err = config.LoadOptional(configPath)
	} else {
		cfg, err = config.Load(configPath)
	}
	if err != nil {
		return nil, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}
