package config

import (
	"fmt"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Load reads configuration from the environment, after loading a .env file
// if one is present in the working directory. A missing .env is not an
// error; it only matters for local runs.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required settings are present and tunables are sane.
func (c *Config) Validate() error {
	if c.AIServiceEndpoint == "" {
		return fmt.Errorf("AZURE_AI_SERVICE_ENDPOINT is required")
	}
	if c.AIServiceKey == "" {
		return fmt.Errorf("AZURE_AI_SERVICE_KEY is required")
	}
	if c.OpenAIEndpoint == "" {
		return fmt.Errorf("AZURE_OPEN_AI_ENDPOINT is required")
	}
	if c.OpenAIKey == "" {
		return fmt.Errorf("AZURE_OPEN_AI_KEY is required")
	}
	if c.SearchBatchSize < 1 {
		return fmt.Errorf("SEARCH_BATCH_SIZE must be positive, got %d", c.SearchBatchSize)
	}
	if c.MaxImageBytes < 1 {
		return fmt.Errorf("MAX_IMAGE_BYTES must be positive, got %d", c.MaxImageBytes)
	}
	return nil
}
