package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	OddsAPI OddsAPIConfig `yaml:"odds_api"`
	Engine  EngineConfig  `yaml:"engine"`
}

type ServerConfig struct {
	Port              int    `yaml:"port"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"` // e.g. "5s"
}

// ReadHeaderTimeoutDuration parses the configured timeout, falling back to 5s.
func (s ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.ReadHeaderTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // optional path for a JSON log file
}

type OddsAPIConfig struct {
	BaseURL    string   `yaml:"base_url"`
	Timeout    string   `yaml:"timeout"` // e.g. "10s"
	Regions    string   `yaml:"regions"`
	Markets    string   `yaml:"markets"`
	OddsFormat string   `yaml:"odds_format"`
	Bookmaker  string   `yaml:"bookmaker"`
	Sports     []string `yaml:"sports"`
	WindowDays int      `yaml:"window_days"` // lookahead window, 2 = today + tomorrow

	// UseSample switches the feed to the built-in sample games, for demos
	// and offline runs. No HTTP calls are made in sample mode.
	UseSample bool `yaml:"use_sample"`
}

// TimeoutDuration parses the configured fetch timeout, falling back to 10s.
func (o OddsAPIConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(o.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

type EngineConfig struct {
	MinEdgePercent float64 `yaml:"min_edge_percent"` // default PLAY/PASS threshold
	TopN           int     `yaml:"top_n"`            // truncation size for the top-N toggle
	VigFactor      float64 `yaml:"vig_factor"`       // baseline model vig adjustment
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadHeaderTimeout == "" {
		c.Server.ReadHeaderTimeout = "5s"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.OddsAPI.BaseURL == "" {
		c.OddsAPI.BaseURL = "https://api.the-odds-api.com"
	}
	if c.OddsAPI.Timeout == "" {
		c.OddsAPI.Timeout = "10s"
	}
	if c.OddsAPI.Regions == "" {
		c.OddsAPI.Regions = "us"
	}
	if c.OddsAPI.Markets == "" {
		c.OddsAPI.Markets = "h2h"
	}
	if c.OddsAPI.OddsFormat == "" {
		c.OddsAPI.OddsFormat = "decimal"
	}
	if c.OddsAPI.Bookmaker == "" {
		c.OddsAPI.Bookmaker = "draftkings"
	}
	if len(c.OddsAPI.Sports) == 0 {
		c.OddsAPI.Sports = []string{
			"americanfootball_nfl",
			"baseball_mlb",
			"basketball_nba",
			"icehockey_nhl",
			"soccer_epl",
			"soccer_uefa_champions_league",
			"soccer_usa_mls",
		}
	}
	if c.OddsAPI.WindowDays <= 0 {
		c.OddsAPI.WindowDays = 2
	}
	if c.Engine.MinEdgePercent == 0 {
		c.Engine.MinEdgePercent = 3.0
	}
	if c.Engine.TopN <= 0 {
		c.Engine.TopN = 10
	}
	if c.Engine.VigFactor == 0 {
		c.Engine.VigFactor = 0.98
	}
}
