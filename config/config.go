// Package config provides configuration loading and hot reload.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Auth      AuthConfig      `yaml:"auth"`
	Steam     SteamConfig     `yaml:"steam"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig configures the catalog database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LedgerConfig configures the shared expiry store backing the dedup ledger
// and the extraction cache. An empty dir keeps the store in memory.
type LedgerConfig struct {
	Dir string `yaml:"dir"`
}

// AuthConfig configures API access. An empty key disables checking.
type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// SteamConfig configures the Steam Web API client.
type SteamConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// GeminiConfig configures the tag extraction client.
type GeminiConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// RateLimitConfig configures the path limiter. Rules are evaluated in the
// order listed; the first matching pattern wins, so specific patterns must
// come before wildcards covering the same prefix.
type RateLimitConfig struct {
	Rules   []RateRule `yaml:"rules"`
	Default RateRule   `yaml:"default"`
}

// RateRule configures one bucket. Mode is "greedy" (continuous refill) or
// "interval" (whole periods only); greedy is the default.
type RateRule struct {
	Pattern      string        `yaml:"pattern"`
	Capacity     int64         `yaml:"capacity"`
	RefillTokens int64         `yaml:"refill_tokens"`
	RefillPeriod time.Duration `yaml:"refill_period"`
	Mode         string        `yaml:"mode"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// Default returns the configuration used when a field is unset.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{Path: "steamrec.db"},
		Steam:    SteamConfig{Timeout: 10 * time.Second},
		Gemini:   GeminiConfig{Timeout: 5 * time.Second},
		RateLimit: RateLimitConfig{
			Rules: []RateRule{
				{Pattern: "/api/recommend/input", Capacity: 3, RefillTokens: 3, RefillPeriod: 30 * time.Minute, Mode: "greedy"},
				{Pattern: "/api/recommend/**", Capacity: 1, RefillTokens: 1, RefillPeriod: 2 * time.Second, Mode: "interval"},
			},
			Default: RateRule{Capacity: 60, RefillTokens: 2, RefillPeriod: time.Second, Mode: "greedy"},
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads and validates configuration from a YAML file, filling unset
// fields from Default. Environment variables STEAM_API_KEY, GEMINI_API_KEY
// and STEAMREC_API_KEY override their file counterparts so secrets can stay
// out of the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STEAM_API_KEY"); v != "" {
		cfg.Steam.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Gemini.APIKey = v
	}
	if v := os.Getenv("STEAMREC_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
}

// Validate checks the configuration for problems that would surface later
// as confusing runtime behavior.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	for i, r := range append(c.RateLimit.Rules, c.RateLimit.Default) {
		if r.Capacity <= 0 {
			return fmt.Errorf("rate_limit rule %d: capacity must be positive", i)
		}
		if r.RefillTokens <= 0 || r.RefillPeriod <= 0 {
			return fmt.Errorf("rate_limit rule %d: refill must be positive", i)
		}
		if r.Mode != "" && r.Mode != "greedy" && r.Mode != "interval" {
			return fmt.Errorf("rate_limit rule %d: unknown mode %q", i, r.Mode)
		}
	}
	for _, r := range c.RateLimit.Rules {
		if r.Pattern == "" {
			return fmt.Errorf("rate_limit rule without pattern")
		}
	}
	return nil
}
