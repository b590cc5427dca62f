package config

import (
	"fmt"
	"os"
)

// LoadConfig loads and parses a configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// validateConfig performs validation on the configuration
func validateConfig(cfg *Config) error {
	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	if cfg.HTTPAddr == "" {
		return fmt.Errorf("http_addr cannot be empty")
	}

	a := cfg.Analysis
	if a.Simulations <= 0 {
		return fmt.Errorf("analysis.simulations must be positive, got %d", a.Simulations)
	}
	if a.ActivationThreshold <= 0 || a.ActivationThreshold >= 1 {
		return fmt.Errorf("analysis.activation_threshold must be in (0, 1), got %f", a.ActivationThreshold)
	}
	if a.PathLength < 2 {
		return fmt.Errorf("analysis.path_length must be at least 2, got %d", a.PathLength)
	}
	if a.TopPaths <= 0 {
		return fmt.Errorf("analysis.top_paths must be positive, got %d", a.TopPaths)
	}

	return nil
}
