package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadDefaults verifies the defaults when no config file exists.
func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.OpenAI.Model != "whisper-1" {
		t.Errorf("Model = %q, want %q", cfg.OpenAI.Model, "whisper-1")
	}
	if cfg.OpenAI.Prompt != "" {
		t.Errorf("Prompt = %q, want empty", cfg.OpenAI.Prompt)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.FramesPerBuffer != 1024 {
		t.Errorf("FramesPerBuffer = %d, want 1024", cfg.Audio.FramesPerBuffer)
	}
	if cfg.Speech.Threshold != 0.015 {
		t.Errorf("Threshold = %v, want 0.015", cfg.Speech.Threshold)
	}
	if cfg.Speech.MinSpeechMS != 300 || cfg.Speech.SilenceMS != 400 {
		t.Errorf("speech durations = %d/%d ms, want 300/400", cfg.Speech.MinSpeechMS, cfg.Speech.SilenceMS)
	}
	if cfg.Hotkey.Enabled {
		t.Error("Hotkey.Enabled = true, want disabled by default")
	}
	if len(cfg.Hotkey.Keys) == 0 {
		t.Error("Hotkey.Keys is empty")
	}
	if cfg.DisableNotifications {
		t.Error("DisableNotifications = true, want notifications on by default")
	}
}

// TestSaveRoundTrip verifies that a saved config loads back identically.
func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg.OpenAI.APIKey = "sk-test-0123456789abcdef"
	cfg.OpenAI.Language = "en"
	cfg.Speech.Threshold = 0.02
	cfg.Hotkey.Enabled = true

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("config file missing after Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() after Save error = %v", err)
	}
	if loaded.OpenAI.APIKey != cfg.OpenAI.APIKey {
		t.Errorf("APIKey = %q, want %q", loaded.OpenAI.APIKey, cfg.OpenAI.APIKey)
	}
	if loaded.OpenAI.Language != "en" {
		t.Errorf("Language = %q, want %q", loaded.OpenAI.Language, "en")
	}
	if loaded.Speech.Threshold != 0.02 {
		t.Errorf("Threshold = %v, want 0.02", loaded.Speech.Threshold)
	}
	if !loaded.Hotkey.Enabled {
		t.Error("Hotkey.Enabled = false after round trip")
	}
}

// TestLoadPartialFillsDefaults verifies that fields missing from the
// file come back with their defaults.
func TestLoadPartialFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	partial := `{"openai": {"api_key": "sk-partial-0123456789"}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(partial), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-partial-0123456789" {
		t.Errorf("APIKey = %q, want stored key", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "whisper-1" {
		t.Errorf("Model = %q, want default whisper-1", cfg.OpenAI.Model)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want default 16000", cfg.Audio.SampleRate)
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil for corrupt file")
	}
}

// TestAPIKeyEnvFallback verifies the stored key wins and the environment
// fills in when nothing is stored.
func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv(EnvAPIKey, "sk-env-0123456789abcdef")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.APIKey(); got != "sk-env-0123456789abcdef" {
		t.Errorf("APIKey() = %q, want env key", got)
	}

	cfg.OpenAI.APIKey = "sk-stored-0123456789"
	if got := cfg.APIKey(); got != "sk-stored-0123456789" {
		t.Errorf("APIKey() = %q, want stored key over env", got)
	}
}

func TestSetAPIKey(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := cfg.SetAPIKey("  sk-test-0123456789abcdef  "); err != nil {
		t.Fatalf("SetAPIKey() error = %v", err)
	}
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.OpenAI.APIKey != "sk-test-0123456789abcdef" {
		t.Errorf("stored key = %q, want trimmed key", loaded.OpenAI.APIKey)
	}

	if err := cfg.SetAPIKey("not-a-key"); err == nil {
		t.Fatal("SetAPIKey() error = nil for invalid key")
	}
}

// TestValidateAPIKey verifies the key shape checks.
func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"valid", "sk-test-0123456789abcdef", false},
		{"valid padded", "  sk-test-0123456789abcdef  ", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"wrong prefix", "pk-test-0123456789abcdef", true},
		{"too short", "sk-short", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPIKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestDirEnvOverride(t *testing.T) {
	want := t.TempDir()
	t.Setenv(EnvConfigDir, want)

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error = %v", err)
	}
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}
