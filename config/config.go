package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"planetwars/game"
)

// Transports the runner can speak.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config holds the runner configuration.
type Config struct {
	Transport  string `yaml:"transport"`   // stdio or http
	Addr       string `yaml:"addr"`        // Listen address of the http transport
	Player     int    `yaml:"player"`      // Player number of the agent in snapshots
	LogLevel   string `yaml:"log_level"`   // zerolog level name
	LogFile    string `yaml:"log_file"`    // Optional file logs are copied to
	MetricsDir string `yaml:"metrics_dir"` // Turn metrics are written here when set
	TieBreak   string `yaml:"tie_break"`   // first or neutral
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Transport: TransportStdio,
		Addr:      ":8080",
		Player:    1,
		LogLevel:  "info",
		TieBreak:  "first",
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.Transport = envOrDefault("PLANETWARS_TRANSPORT", cfg.Transport)
	cfg.Addr = envOrDefault("PLANETWARS_ADDR", cfg.Addr)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envOrDefault("LOG_FILE", cfg.LogFile)
	cfg.MetricsDir = envOrDefault("PLANETWARS_METRICS_DIR", cfg.MetricsDir)
	if v := os.Getenv("PLANETWARS_PLAYER"); v != "" {
		player, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse PLANETWARS_PLAYER: %w", err)
		}
		cfg.Player = player
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("unknown transport %q", c.Transport)
	}
	if c.Player < 1 {
		return fmt.Errorf("player number must be positive, got %d", c.Player)
	}
	if _, err := c.Rules(); err != nil {
		return err
	}
	return nil
}

// Rules returns the combat rules for the configured tie-break policy.
func (c *Config) Rules() (*game.StandardRules, error) {
	rules := game.NewStandardRules()
	switch c.TieBreak {
	case "", "first":
		rules.Tie = game.TieFirstListed
	case "neutral":
		rules.Tie = game.TieNeutral
	default:
		return nil, fmt.Errorf("unknown tie break %q", c.TieBreak)
	}
	return rules, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
