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
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Defaults struct {
		Symbol    string  `yaml:"symbol"`
		Exchange  string  `yaml:"exchange"`
		TradeSize float64 `yaml:"trade_size"`
		Period    string  `yaml:"period"`
		Interval  string  `yaml:"interval"`
	} `yaml:"defaults"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"cache"`
	Refresh struct {
		Cron          string  `yaml:"cron"`
		RiskThreshold float64 `yaml:"risk_threshold"`
	} `yaml:"refresh"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; defaults cover everything but the
// Telegram alerting, which stays off until configured.
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
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("QUOTE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("QUOTE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("DEFAULT_SYMBOL"); v != "" {
		cfg.Defaults.Symbol = v
	}
	if v := os.Getenv("DEFAULT_EXCHANGE"); v != "" {
		cfg.Defaults.Exchange = v
	}
	if v := os.Getenv("DEFAULT_TRADE_SIZE"); v != "" {
		if size, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Defaults.TradeSize = size
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Refresh.Cron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Defaults.Symbol == "" {
		cfg.Defaults.Symbol = "AAPL"
	}
	if cfg.Defaults.Exchange == "" {
		cfg.Defaults.Exchange = "US"
	}
	if cfg.Defaults.TradeSize == 0 {
		cfg.Defaults.TradeSize = 100
	}
	if cfg.Defaults.Period == "" {
		cfg.Defaults.Period = "5d"
	}
	if cfg.Defaults.Interval == "" {
		cfg.Defaults.Interval = "15m"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 15
	}
	if cfg.Refresh.RiskThreshold == 0 {
		cfg.Refresh.RiskThreshold = 0.8
	}

	return cfg, nil
}

// Validate checks that the effective configuration is usable.
func (c *Config) Validate() error {
	if c.Defaults.Exchange != "US" && c.Defaults.Exchange != "India" {
		return fmt.Errorf("defaults.exchange must be US or India, got %q", c.Defaults.Exchange)
	}
	if c.Defaults.TradeSize < 1 {
		return fmt.Errorf("defaults.trade_size must be at least 1")
	}
	if c.Cache.TTLMinutes < 0 {
		return fmt.Errorf("cache.ttl_minutes must not be negative")
	}
	if c.Refresh.RiskThreshold < 0 || c.Refresh.RiskThreshold > 1 {
		return fmt.Errorf("refresh.risk_threshold must be within [0,1]")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}
