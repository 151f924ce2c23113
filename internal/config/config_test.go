package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOG_LEVEL", "TRACING_ENABLED", "TRACING_SERVICE_NAME", "TRACING_EXPORTER",
		"OTLP_ENDPOINT", "TRACING_SAMPLE_RATIO", "METRICS_TEXTFILE",
	} {
		t.Setenv(envPrefix+key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Tracing.Enabled {
		t.Error("expected tracing to be disabled by default")
	}
	if cfg.Tracing.Exporter != "stdout" {
		t.Errorf("Exporter = %q, want stdout", cfg.Tracing.Exporter)
	}
	if cfg.Tracing.SampleRatio != 1.0 {
		t.Errorf("SampleRatio = %v, want 1.0", cfg.Tracing.SampleRatio)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVENT_LOCATOR_LOG_LEVEL", "debug")
	t.Setenv("EVENT_LOCATOR_TRACING_ENABLED", "true")
	t.Setenv("EVENT_LOCATOR_TRACING_EXPORTER", "OTLP")
	t.Setenv("EVENT_LOCATOR_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("EVENT_LOCATOR_TRACING_SAMPLE_RATIO", "0.25")
	t.Setenv("EVENT_LOCATOR_METRICS_TEXTFILE", "/tmp/locator.prom")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.Tracing.Enabled {
		t.Error("expected tracing to be enabled")
	}
	if cfg.Tracing.Exporter != "otlp" {
		t.Errorf("Exporter = %q, want otlp", cfg.Tracing.Exporter)
	}
	if cfg.Tracing.Endpoint != "collector:4317" {
		t.Errorf("Endpoint = %q, want collector:4317", cfg.Tracing.Endpoint)
	}
	if cfg.Tracing.SampleRatio != 0.25 {
		t.Errorf("SampleRatio = %v, want 0.25", cfg.Tracing.SampleRatio)
	}
	if cfg.MetricsTextfile != "/tmp/locator.prom" {
		t.Errorf("MetricsTextfile = %q", cfg.MetricsTextfile)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "EVENT_LOCATOR_LOG_LEVEL=warn\nEVENT_LOCATOR_METRICS_TEXTFILE=/var/lib/locator.prom\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	// godotenv sets process variables directly; make sure they are restored.
	t.Cleanup(func() {
		os.Unsetenv("EVENT_LOCATOR_LOG_LEVEL")        // nolint:errcheck
		os.Unsetenv("EVENT_LOCATOR_METRICS_TEXTFILE") // nolint:errcheck
	})
	os.Unsetenv("EVENT_LOCATOR_LOG_LEVEL")        // nolint:errcheck
	os.Unsetenv("EVENT_LOCATOR_METRICS_TEXTFILE") // nolint:errcheck

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.MetricsTextfile != "/var/lib/locator.prom" {
		t.Errorf("MetricsTextfile = %q, want /var/lib/locator.prom", cfg.MetricsTextfile)
	}
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad exporter", func(c *Config) { c.Tracing.Exporter = "zipkin" }, true},
		{"ratio too high", func(c *Config) { c.Tracing.SampleRatio = 1.5 }, true},
		{"ratio negative", func(c *Config) { c.Tracing.SampleRatio = -0.1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				LogLevel: "info",
				Tracing:  TracingConfig{Exporter: "stdout", SampleRatio: 1},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
