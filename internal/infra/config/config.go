package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server      ServerConfig `yaml:"server"`
	Logger      LoggerConfig `yaml:"logger"`
	Tracer      TracerConfig `yaml:"tracer"`
	Audit       AuditConfig  `yaml:"audit"`
	Limits      LimitsConfig `yaml:"limits"`
	AllowedDirs []string     `yaml:"allowed_dirs,omitempty"`
}

// ServerConfig identifies the MCP server to clients.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// TracerConfig holds tracing settings.
type TracerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Exporter string `yaml:"exporter"`
}

// AuditConfig holds audit trail settings.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// LimitsConfig holds per-tool rate limiting settings. A Limit of 0 disables
// rate limiting.
type LimitsConfig struct {
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "secure-filesystem-server",
			Version: "0.2.0",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Tracer: TracerConfig{
			Enabled:  false,
			Exporter: "noop",
		},
		Audit: AuditConfig{
			Enabled: false,
			Path:    "audit.jsonl",
		},
		Limits: LimitsConfig{
			RateLimit:  0,
			RateWindow: time.Minute,
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error: the defaults are returned so the binary runs with nothing but
// command-line directories.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks config invariants that would otherwise fail late.
func Validate(cfg *Config) error {
	switch cfg.Logger.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logger.format: unsupported format %q", cfg.Logger.Format)
	}

	switch cfg.Tracer.Exporter {
	case "", "noop", "stdout":
	default:
		return fmt.Errorf("tracer.exporter: unsupported exporter %q", cfg.Tracer.Exporter)
	}

	if cfg.Audit.Enabled && cfg.Audit.Path == "" {
		return fmt.Errorf("audit.path: required when audit is enabled")
	}

	if cfg.Limits.RateLimit < 0 {
		return fmt.Errorf("limits.rate_limit: must be >= 0")
	}
	if cfg.Limits.RateLimit > 0 && cfg.Limits.RateWindow <= 0 {
		return fmt.Errorf("limits.rate_window: must be > 0 when rate_limit is set")
	}

	return nil
}
