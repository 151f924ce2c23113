// Package config handles ambient configuration from environment variables and an optional .env file.
//
// Only operational concerns (logging, tracing, metrics export) are configurable. The simulation
// parameters are compiled into the event package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pfrederiksen/event-locator/internal/logger"
)

const envPrefix = "EVENT_LOCATOR_"

// Config holds all application configuration.
type Config struct {
	LogLevel        string
	Tracing         TracingConfig
	MetricsTextfile string
}

// TracingConfig governs how pipeline tracing is initialised.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Exporter    string // stdout | otlp
	Endpoint    string // used when Exporter == otlp
	SampleRatio float64
}

// Load reads configuration from environment variables with sensible defaults.
// When envFile is non-empty its variables are loaded first; a missing file is not an error.
// Variables already present in the environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "warn"),
		Tracing: TracingConfig{
			Enabled:     getBoolEnv("TRACING_ENABLED", false),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "event-locator"),
			Exporter:    strings.ToLower(getEnv("TRACING_EXPORTER", "stdout")),
			Endpoint:    getEnv("OTLP_ENDPOINT", ""),
			SampleRatio: getFloatEnv("TRACING_SAMPLE_RATIO", 1.0),
		},
		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
	}, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	switch c.Tracing.Exporter {
	case "stdout", "otlp", "otlpgrpc":
	default:
		return fmt.Errorf("unsupported tracing exporter: %s", c.Tracing.Exporter)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample ratio must be between 0 and 1, got %v", c.Tracing.SampleRatio)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(envPrefix + key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(envPrefix + key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
