package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"docgen/internal/logger"
	"docgen/internal/theme"
)

type Config struct {
	// HTTP server
	Port string

	// API keys checked on generation endpoints; both empty disables the check
	APIKey1 string
	APIKey2 string

	// Rendering
	DefaultTheme     string
	LogoFetchTimeout time.Duration
	OutputDir        string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	timeout, err := getDuration("LOGO_FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	config := &Config{
		Port:             getEnv("PORT", "8080"),
		APIKey1:          getEnv("API_KEY_1", ""),
		APIKey2:          getEnv("API_KEY_2", ""),
		DefaultTheme:     getEnv("DEFAULT_THEME", theme.DefaultID),
		LogoFetchTimeout: timeout,
		OutputDir:        getEnv("OUTPUT_DIR", "generated"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:    getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:        getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.LogoFetchTimeout <= 0 {
		return fmt.Errorf("LOGO_FETCH_TIMEOUT must be positive, got %s", c.LogoFetchTimeout)
	}
	if !theme.Known(c.DefaultTheme) {
		return fmt.Errorf("DEFAULT_THEME %q is not a known theme", c.DefaultTheme)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Port)
	}
	if (c.APIKey1 == "") != (c.APIKey2 == "") {
		return fmt.Errorf("API_KEY_1 and API_KEY_2 must be set together")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

// AuthEnabled reports whether generation endpoints require API keys.
func (c *Config) AuthEnabled() bool {
	return c.APIKey1 != "" && c.APIKey2 != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
