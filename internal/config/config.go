// Package config loads and validates the application configuration from
// environment variables and an optional YAML file. Platform credentials live
// here and are passed into the adapter layer explicitly; nothing in the
// transformation core reads configuration or any other global state.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Platforms PlatformsConfig `yaml:"platforms" envconfig:"PLATFORMS"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains request rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/artistpulse.log"`
}

// DataConfig controls the sample dataset and default page parameters.
type DataConfig struct {
	DefaultDays     int    `yaml:"default_days" envconfig:"DEFAULT_DAYS" default:"30"`
	DefaultPlatform string `yaml:"default_platform" envconfig:"DEFAULT_PLATFORM" default:"sample"`
	SampleSeed      int64  `yaml:"sample_seed" envconfig:"SAMPLE_SEED" default:"42"`
}

// ExportConfig controls report export output.
type ExportConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" default:"reports"`
}

// PlatformsConfig carries per-platform API credentials. Credentials are
// injected into the platform adapters at construction and never read from
// process globals.
type PlatformsConfig struct {
	Spotify    SpotifyConfig    `yaml:"spotify" envconfig:"SPOTIFY"`
	AppleMusic AppleMusicConfig `yaml:"apple_music" envconfig:"APPLE_MUSIC"`
	YouTube    YouTubeConfig    `yaml:"youtube" envconfig:"YOUTUBE"`
	Amazon     AmazonConfig     `yaml:"amazon" envconfig:"AMAZON"`
	Timeout    time.Duration    `yaml:"timeout" envconfig:"TIMEOUT" default:"30s"`
}

// SpotifyConfig holds Spotify client-credentials auth settings.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id" envconfig:"CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" envconfig:"CLIENT_SECRET"`
}

// AppleMusicConfig holds Apple Music developer-token settings.
type AppleMusicConfig struct {
	KeyID      string `yaml:"key_id" envconfig:"KEY_ID"`
	TeamID     string `yaml:"team_id" envconfig:"TEAM_ID"`
	PrivateKey string `yaml:"private_key" envconfig:"PRIVATE_KEY"`
}

// YouTubeConfig holds the YouTube Data API key.
type YouTubeConfig struct {
	APIKey string `yaml:"api_key" envconfig:"API_KEY"`
}

// AmazonConfig holds Amazon Music client credentials.
type AmazonConfig struct {
	ClientID     string `yaml:"client_id" envconfig:"CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" envconfig:"CLIENT_SECRET"`
}

// Load loads configuration from environment variables, overlaying values
// from config.yaml when the file exists. Environment variables win.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("PULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = merge(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func configFilePath() string {
	if path := os.Getenv("PULSE_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// merge overlays file values on top of the env-derived config. A file value
// applies only when it is set and the matching env var was not given
// explicitly, so env always wins over the file and the file wins over
// envconfig defaults.
func merge(fileCfg, envCfg Config) Config {
	if fileCfg.Server.Port != 0 && !envSet("PULSE_SERVER_PORT") {
		envCfg.Server.Port = fileCfg.Server.Port
	}
	if fileCfg.Server.ReadTimeout != 0 && !envSet("PULSE_SERVER_READ_TIMEOUT") {
		envCfg.Server.ReadTimeout = fileCfg.Server.ReadTimeout
	}
	if fileCfg.Server.WriteTimeout != 0 && !envSet("PULSE_SERVER_WRITE_TIMEOUT") {
		envCfg.Server.WriteTimeout = fileCfg.Server.WriteTimeout
	}
	if fileCfg.Logging.Level != "" && !envSet("PULSE_LOGGING_LEVEL") {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	if fileCfg.Data.DefaultDays != 0 && !envSet("PULSE_DATA_DEFAULT_DAYS") {
		envCfg.Data.DefaultDays = fileCfg.Data.DefaultDays
	}
	if fileCfg.Data.SampleSeed != 0 && !envSet("PULSE_DATA_SAMPLE_SEED") {
		envCfg.Data.SampleSeed = fileCfg.Data.SampleSeed
	}
	if fileCfg.Export.Dir != "" && !envSet("PULSE_EXPORT_DIR") {
		envCfg.Export.Dir = fileCfg.Export.Dir
	}
	if fileCfg.Platforms.Spotify.ClientID != "" && envCfg.Platforms.Spotify.ClientID == "" {
		envCfg.Platforms.Spotify = fileCfg.Platforms.Spotify
	}
	if fileCfg.Platforms.YouTube.APIKey != "" && envCfg.Platforms.YouTube.APIKey == "" {
		envCfg.Platforms.YouTube = fileCfg.Platforms.YouTube
	}
	if fileCfg.Platforms.AppleMusic.KeyID != "" && envCfg.Platforms.AppleMusic.KeyID == "" {
		envCfg.Platforms.AppleMusic = fileCfg.Platforms.AppleMusic
	}
	if fileCfg.Platforms.Amazon.ClientID != "" && envCfg.Platforms.Amazon.ClientID == "" {
		envCfg.Platforms.Amazon = fileCfg.Platforms.Amazon
	}
	return envCfg
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Data.DefaultDays < 1 {
		return fmt.Errorf("default_days must be positive, got %d", c.Data.DefaultDays)
	}
	return nil
}
