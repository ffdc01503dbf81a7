package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	Provider struct {
		Benchmark      string `yaml:"benchmark"`
		RiskFree       string `yaml:"risk_free"`
		Proxy          string `yaml:"proxy"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"provider"`
	AlphaVantage struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"alpha_vantage"`
	Analytics struct {
		RollingWindow int `yaml:"rolling_window"`
		TradingDays   int `yaml:"trading_days"`
	} `yaml:"analytics"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("BENCHMARK_SYMBOL"); v != "" {
		cfg.Provider.Benchmark = v
	}
	if v := os.Getenv("RISK_FREE_SYMBOL"); v != "" {
		cfg.Provider.RiskFree = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Provider.Proxy = v
	}
	if v := os.Getenv("ROLLING_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analytics.RollingWindow = n
		}
	}

	// Defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8090"
	}
	if cfg.Provider.Benchmark == "" {
		cfg.Provider.Benchmark = "^GSPC"
	}
	if cfg.Provider.RiskFree == "" {
		cfg.Provider.RiskFree = "^IRX"
	}
	if cfg.Provider.TimeoutSeconds == 0 {
		cfg.Provider.TimeoutSeconds = 30
	}
	if cfg.Analytics.RollingWindow == 0 {
		cfg.Analytics.RollingWindow = 7
	}
	if cfg.Analytics.TradingDays == 0 {
		cfg.Analytics.TradingDays = 252
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Analytics.RollingWindow < 2 {
		return fmt.Errorf("analytics.rolling_window must be at least 2")
	}
	if c.Analytics.TradingDays <= 0 {
		return fmt.Errorf("analytics.trading_days must be positive")
	}
	if c.Provider.TimeoutSeconds <= 0 {
		return fmt.Errorf("provider.timeout_seconds must be positive")
	}
	return nil
}
