package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig configures SQLite storage.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// YouTubeConfig configures the channel to analyze and API access.
type YouTubeConfig struct {
	APIKey    string `yaml:"api_key"`
	ChannelID string `yaml:"channel_id"`
}

// AnalysisConfig tunes the keyword extraction step.
type AnalysisConfig struct {
	TopFraction float64 `yaml:"top_fraction"`
	TopKeywords int     `yaml:"top_keywords"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: "./channelpulse.db"},
		YouTube: YouTubeConfig{
			ChannelID: "UC7cs8q-gJRlGwj4A8OmCmXg",
		},
		Analysis: AnalysisConfig{
			TopFraction: 0.1,
			TopKeywords: 15,
		},
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CHANNELPULSE_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}
	if v := os.Getenv("CHANNELPULSE_CHANNEL_ID"); v != "" {
		cfg.YouTube.ChannelID = v
	}
	if v := os.Getenv("CHANNELPULSE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
