// Package config handles application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	appName        = "sayclip"
	configFileName = "config.json"

	// EnvConfigDir overrides the config directory, mainly for tests.
	EnvConfigDir = "SAYCLIP_CONFIG_DIR"
	// EnvAPIKey supplies an API key without persisting it.
	EnvAPIKey = "OPENAI_API_KEY"
)

const (
	defaultModel           = "whisper-1"
	defaultSampleRate      = 16000
	defaultFramesPerBuffer = 1024
	defaultThreshold       = 0.015
	defaultMinSpeechMS     = 300
	defaultSilenceMS       = 400
)

// OpenAIConfig holds the transcription backend settings.
type OpenAIConfig struct {
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
	Model    string `json:"model"`
	Prompt   string `json:"prompt"`
	Language string `json:"language,omitempty"`
}

// AudioConfig holds microphone capture parameters.
type AudioConfig struct {
	SampleRate      int `json:"sample_rate"`
	FramesPerBuffer int `json:"frames_per_buffer"`
}

// SpeechConfig tunes the speech detector.
type SpeechConfig struct {
	Threshold   float64 `json:"threshold"`
	MinSpeechMS int     `json:"min_speech_ms"`
	SilenceMS   int     `json:"silence_ms"`
}

// MinSpeech returns the minimum speech duration.
func (s SpeechConfig) MinSpeech() time.Duration {
	return time.Duration(s.MinSpeechMS) * time.Millisecond
}

// Silence returns the trailing-silence duration that ends a segment.
func (s SpeechConfig) Silence() time.Duration {
	return time.Duration(s.SilenceMS) * time.Millisecond
}

// HotkeyConfig controls the global record toggle.
type HotkeyConfig struct {
	Enabled bool     `json:"enabled"`
	Keys    []string `json:"keys"`
}

// Config represents the application configuration.
type Config struct {
	OpenAI OpenAIConfig `json:"openai"`
	Audio  AudioConfig  `json:"audio"`
	Speech SpeechConfig `json:"speech"`
	Hotkey HotkeyConfig `json:"hotkey"`

	// Inverted so the JSON zero value keeps notifications on.
	DisableNotifications bool `json:"disable_notifications,omitempty"`
}

// Load loads configuration from the config file.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("get config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ensureDefaults()

	return &cfg, nil
}

// Save persists the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("get config path: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// APIKey returns the effective API key: the stored key, or the
// OPENAI_API_KEY environment variable when none is stored.
func (c *Config) APIKey() string {
	if c.OpenAI.APIKey != "" {
		return c.OpenAI.APIKey
	}
	return os.Getenv(EnvAPIKey)
}

// SetAPIKey validates, stores and persists a new API key.
func (c *Config) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if err := ValidateAPIKey(key); err != nil {
		return err
	}
	c.OpenAI.APIKey = key
	return c.Save()
}

// ValidateAPIKey performs a shape check on an OpenAI API key.
func ValidateAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("api key required")
	}
	if !strings.HasPrefix(key, "sk-") {
		return fmt.Errorf("api key must start with sk-")
	}
	if len(key) < 20 {
		return fmt.Errorf("api key looks too short")
	}
	return nil
}

// Dir returns the directory that holds the config file and app data.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// Helper functions

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	cfg.ensureDefaults()
	return cfg
}

// ensureDefaults fills zero values so a partial config file still yields
// a usable configuration.
func (c *Config) ensureDefaults() {
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = defaultModel
	}
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = defaultSampleRate
	}
	if c.Audio.FramesPerBuffer <= 0 {
		c.Audio.FramesPerBuffer = defaultFramesPerBuffer
	}
	if c.Speech.Threshold <= 0 {
		c.Speech.Threshold = defaultThreshold
	}
	if c.Speech.MinSpeechMS <= 0 {
		c.Speech.MinSpeechMS = defaultMinSpeechMS
	}
	if c.Speech.SilenceMS <= 0 {
		c.Speech.SilenceMS = defaultSilenceMS
	}
	if len(c.Hotkey.Keys) == 0 {
		c.Hotkey.Keys = defaultHotkeys()
	}
}

func defaultHotkeys() []string {
	return []string{"ctrl", "shift", "r"}
}
