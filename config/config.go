package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OllamaConfig holds the settings for the local ollama instance used to
// generate absentee insults.
type OllamaConfig struct {
	// GenerateMessages toggles AI generation. When false the bot only uses
	// the canned fallback messages.
	GenerateMessages bool `yaml:"generate_messages"`

	// Host is the base URL of the ollama server, e.g. http://localhost
	Host string `yaml:"host"`

	// Port the ollama server listens on
	Port int `yaml:"port"`

	// InsultModelName is the ollama model used for insult generation
	InsultModelName string `yaml:"insult_model_name"`
}

// ServerURL returns the full base URL for the ollama API.
func (o OllamaConfig) ServerURL() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// Config represents the full bot configuration file structure
type Config struct {
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// BotName is the bot's own username, excluded from all player queries
	BotName string `yaml:"bot_name"`

	// AutoPostSummaryChannel is the channel the daily summary is posted to.
	// Empty disables the daily scheduler.
	AutoPostSummaryChannel string `yaml:"auto_post_summary_channel"`

	// AutoPostHour and AutoPostMin set the local time of day the daily
	// summary check fires
	AutoPostHour int `yaml:"auto_post_hour"`
	AutoPostMin  int `yaml:"auto_post_min"`

	// InsultUserName is the player singled out for absentee flavor text
	InsultUserName string `yaml:"insult_user_name"`

	// InsultUserID is the discord mention substituted into generated insults
	InsultUserID string `yaml:"insult_user_id"`

	// FooterMessage is appended to summaries and absentee notices
	FooterMessage string `yaml:"footer_message"`

	// UserToNameMap maps discord usernames to display names
	UserToNameMap map[string]string `yaml:"user_to_name_map"`

	// TenorAPIKey enables tenor GIF search. When empty, GiphyAPIKey is
	// tried instead; when both are empty no reaction images are attached.
	TenorAPIKey string `yaml:"tenor_api_key"`
	GiphyAPIKey string `yaml:"giphy_api_key"`

	// MetricsAddr is the listen address of the metrics/health server
	MetricsAddr string `yaml:"metrics_addr"`

	Ollama OllamaConfig `yaml:"ollama"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		BotName:       "Strands Bot",
		AutoPostHour:  20,
		AutoPostMin:   0,
		MetricsAddr:   ":6060",
		UserToNameMap: map[string]string{},
		Ollama: OllamaConfig{
			Host: "http://localhost",
			Port: 11434,
		},
	}
}

// Load loads bot configuration from a YAML file, layered over defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path cannot be empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration values that would otherwise fail at runtime.
func (c *Config) Validate() error {
	if c.AutoPostHour < 0 || c.AutoPostHour > 23 {
		return fmt.Errorf("auto_post_hour must be between 0 and 23, got %d", c.AutoPostHour)
	}
	if c.AutoPostMin < 0 || c.AutoPostMin > 59 {
		return fmt.Errorf("auto_post_min must be between 0 and 59, got %d", c.AutoPostMin)
	}
	if c.BotName == "" {
		return fmt.Errorf("bot_name cannot be empty")
	}
	return nil
}

// InsultMention is the mention string substituted into generated
// insults. Falls back to the display name when no user ID is set.
func (c *Config) InsultMention() string {
	if c.InsultUserID != "" {
		return fmt.Sprintf("<@%s>", c.InsultUserID)
	}
	return c.DisplayName(c.InsultUserName)
}

// DisplayName resolves a username through the user-to-name map.
func (c *Config) DisplayName(username string) string {
	if name, ok := c.UserToNameMap[username]; ok {
		return name
	}
	return username
}
