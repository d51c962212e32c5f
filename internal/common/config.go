// Package common provides shared utilities for Ledgerdash
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Reserved rollup keys added to every net worth month alongside the configured
// account groups. Group names in config must not collide with these.
const (
	RollupAll         = "all"
	RollupAssets      = "assets"
	RollupLiabilities = "liabilities"
)

// Prefixes that classify an account group as asset or liability.
const (
	AssetGroupPrefix     = "assets_"
	LiabilityGroupPrefix = "liabilities_"
)

// Config holds all configuration for Ledgerdash
type Config struct {
	Environment   string              `toml:"environment"`
	Server        ServerConfig        `toml:"server"`
	Actual        ActualConfig        `toml:"actual"`
	Refresh       RefreshConfig       `toml:"refresh"`
	Logging       LoggingConfig       `toml:"logging"`
	AccountGroups map[string][]string `toml:"account_groups"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// ActualConfig holds Actual Budget API client configuration.
// An empty APIKey means no upstream is configured; the dashboard then
// serves the built-in demo dataset.
type ActualConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	BudgetID  string `toml:"budget_id"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *ActualConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// RefreshConfig holds the periodic refresh configuration.
type RefreshConfig struct {
	Interval string `toml:"interval"`
}

// GetInterval parses and returns the refresh interval duration.
func (c *RefreshConfig) GetInterval() time.Duration {
	d, err := time.ParseDuration(c.Interval)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Actual: ActualConfig{
			BaseURL:   "http://localhost:5007/v1",
			RateLimit: 5,
			Timeout:   "30s",
		},
		Refresh: RefreshConfig{
			Interval: "15m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		AccountGroups: map[string][]string{
			"assets_liquid":    {"Checking", "Savings"},
			"assets_invest":    {"Brokerage"},
			"liabilities_loan": {"Mortgage"},
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones; missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// TOML decoding merges into a pre-populated map, which would mix the
	// default groups with the user's. Clear first, restore if no file
	// defined any.
	defaultGroups := config.AccountGroups
	config.AccountGroups = nil

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if len(config.AccountGroups) == 0 {
		config.AccountGroups = defaultGroups
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("LDASH_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("LDASH_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("LDASH_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("LDASH_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if url := os.Getenv("LDASH_ACTUAL_URL"); url != "" {
		config.Actual.BaseURL = url
	}

	if key := os.Getenv("LDASH_ACTUAL_API_KEY"); key != "" {
		config.Actual.APIKey = key
	}

	if id := os.Getenv("LDASH_ACTUAL_BUDGET_ID"); id != "" {
		config.Actual.BudgetID = id
	}

	if iv := os.Getenv("LDASH_REFRESH_INTERVAL"); iv != "" {
		config.Refresh.Interval = iv
	}
}

// Validate checks the account group configuration. Group names must not
// shadow the reserved rollup keys, and an account name may belong to at
// most one group; overlapping membership would double-count balances.
func (c *Config) Validate() error {
	reserved := map[string]bool{
		RollupAll:         true,
		RollupAssets:      true,
		RollupLiabilities: true,
	}

	seen := map[string]string{} // account name -> group
	for group, accounts := range c.AccountGroups {
		if strings.TrimSpace(group) == "" {
			return fmt.Errorf("account group with empty name")
		}
		if reserved[group] {
			return fmt.Errorf("account group %q shadows a reserved rollup key", group)
		}
		for _, name := range accounts {
			if prev, ok := seen[name]; ok && prev != group {
				return fmt.Errorf("account %q listed in both %q and %q", name, prev, group)
			}
			seen[name] = group
		}
	}
	return nil
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// IsAssetGroup returns true if the group name is classified as an asset group.
func IsAssetGroup(name string) bool {
	return strings.HasPrefix(name, AssetGroupPrefix)
}

// IsLiabilityGroup returns true if the group name is classified as a liability group.
func IsLiabilityGroup(name string) bool {
	return strings.HasPrefix(name, LiabilityGroupPrefix)
}
