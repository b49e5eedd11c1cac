package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"go.aimuz.me/sayclip/analysis"
	"go.aimuz.me/sayclip/clipboard"
	"go.aimuz.me/sayclip/config"
	"go.aimuz.me/sayclip/history"
	"go.aimuz.me/sayclip/hotkey"
	"go.aimuz.me/sayclip/internal/types"
	"go.aimuz.me/sayclip/recording"
	"go.aimuz.me/sayclip/stt"
	"go.aimuz.me/sayclip/viz"

	"github.com/gen2brain/beeep"
	"github.com/wailsapp/wails/v3/pkg/application"
)

// Service provides application functionality bound to Wails.
// This struct focuses on orchestration; business logic lives in sub-components.
type Service struct {
	cfg     *config.Config
	history *history.Store
	hotkey  *hotkey.Manager

	// UI references - set via Init
	app    *application.App
	window application.Window

	session  *recording.Session
	analyzer *analysis.Analyzer
	renderer *viz.Renderer

	providerMu sync.RWMutex
	provider   stt.Provider

	// Seams for tests: clipboard and notification delivery.
	copyText func(text string) error
	notify   func(title, message string) error

	// Version info (set by caller)
	version string
}

// New creates a new Service. Call Init() after Wails app is created.
func New(version string) *Service {
	return &Service{
		version:  version,
		copyText: clipboard.SetText,
		notify: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// GetVersion returns the application version.
func (s *Service) GetVersion() string {
	return s.version
}

// Init initializes the service with app and window references.
// Must be called after Wails application is created.
func (s *Service) Init(app *application.App, window application.Window) {
	s.app = app
	s.window = window

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		cfg = &config.Config{}
	}
	s.cfg = cfg

	s.setupHistory()
	s.rebuildProvider()

	s.analyzer = analysis.New(analysis.Config{})
	s.renderer = viz.NewRenderer(&eventSurface{emit: s.emit}, s.analyzer, viz.RendererConfig{})

	s.setupSession()
	s.setupHotkey()
}

// Shutdown cleans up resources.
func (s *Service) Shutdown() {
	if s.hotkey != nil {
		s.hotkey.Stop()
	}
	if s.session != nil {
		s.session.Cleanup()
	}
	if p := s.getProvider(); p != nil {
		if err := p.Close(); err != nil {
			slog.Error("close provider", "error", err)
		}
	}
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			slog.Error("close history", "error", err)
		}
	}
}

// CloseWindow aborts any active recording, releases resources and exits
// the application. Bound so the frontend Escape key can trigger it.
func (s *Service) CloseWindow() {
	slog.Info("close requested")
	s.Shutdown()
	if s.app != nil {
		s.app.Quit()
	}
}

func (s *Service) setupHistory() {
	dir, err := config.Dir()
	if err != nil {
		slog.Error("get config dir for history", "error", err)
		return
	}

	path := filepath.Join(dir, "history")
	store, err := history.New(path)
	if err != nil {
		slog.Error("init history", "error", err)
		return
	}
	s.history = store
	slog.Info("history initialized", "path", path)
}

func (s *Service) setupHotkey() {
	s.hotkey = hotkey.NewManager(s.cfg.Hotkey.Keys, func() {
		if err := s.ToggleRecording(); err != nil {
			slog.Error("hotkey toggle", "error", err)
		}
	})

	if s.cfg.Hotkey.Enabled {
		if err := s.hotkey.Start(); err != nil {
			slog.Error("start hotkey", "error", err)
		}
	}
}

// rebuildProvider swaps in a transcription backend reflecting the
// current configuration.
func (s *Service) rebuildProvider() {
	provider := stt.NewWhisperAPI(stt.WhisperAPIConfig{
		APIKey:  s.cfg.APIKey(),
		BaseURL: s.cfg.OpenAI.BaseURL,
		Model:   s.cfg.OpenAI.Model,
	})

	s.providerMu.Lock()
	old := s.provider
	s.provider = provider
	s.providerMu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			slog.Warn("close provider", "error", err)
		}
	}
}

func (s *Service) getProvider() stt.Provider {
	s.providerMu.RLock()
	defer s.providerMu.RUnlock()
	return s.provider
}

// emit is a safe wrapper around app.Event.Emit
func (s *Service) emit(name string, data any) {
	if s.app != nil {
		s.app.Event.Emit(name, data)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// API Key
// ─────────────────────────────────────────────────────────────────────────────

// HasAPIKey reports whether a usable API key is configured.
func (s *Service) HasAPIKey() bool {
	return s.cfg.APIKey() != ""
}

// ValidateAndSaveKey stores a new API key and reloads the transcription
// backend with it.
func (s *Service) ValidateAndSaveKey(key string) types.KeyStatus {
	if err := s.cfg.SetAPIKey(key); err != nil {
		return types.KeyStatus{Success: false, Error: err.Error()}
	}

	s.rebuildProvider()
	s.emit(EventAPIKeySaved, true)
	slog.Info("api key saved")
	return types.KeyStatus{Success: true}
}

// ─────────────────────────────────────────────────────────────────────────────
// Settings
// ─────────────────────────────────────────────────────────────────────────────

// GetSettings returns the user-editable configuration.
func (s *Service) GetSettings() types.Settings {
	return types.Settings{
		Model:         s.cfg.OpenAI.Model,
		Prompt:        s.cfg.OpenAI.Prompt,
		Language:      s.cfg.OpenAI.Language,
		Notifications: !s.cfg.DisableNotifications,
		HotkeyEnabled: s.cfg.Hotkey.Enabled,
	}
}

// SaveSettings persists changed settings and applies them immediately.
func (s *Service) SaveSettings(settings types.Settings) error {
	if settings.Model != "" {
		s.cfg.OpenAI.Model = settings.Model
	}
	s.cfg.OpenAI.Prompt = settings.Prompt
	s.cfg.OpenAI.Language = settings.Language
	s.cfg.DisableNotifications = !settings.Notifications
	s.cfg.Hotkey.Enabled = settings.HotkeyEnabled

	if err := s.cfg.Save(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	s.rebuildProvider()
	s.applyHotkeySetting()
	return nil
}

func (s *Service) applyHotkeySetting() {
	if s.hotkey == nil {
		return
	}
	if s.cfg.Hotkey.Enabled {
		if err := s.hotkey.Start(); err != nil {
			slog.Error("start hotkey", "error", err)
		}
	} else {
		s.hotkey.Stop()
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// History
// ─────────────────────────────────────────────────────────────────────────────

// GetHistory returns recent transcriptions, newest first.
func (s *Service) GetHistory(limit int) []types.Transcription {
	if s.history == nil {
		return nil
	}

	entries, err := s.history.Recent(limit)
	if err != nil {
		slog.Error("read history", "error", err)
		return nil
	}

	items := make([]types.Transcription, len(entries))
	for i, e := range entries {
		items[i] = types.Transcription{
			ID:        e.ID,
			Text:      e.Text,
			Copied:    e.Copied,
			CreatedAt: e.CreatedAt,
		}
	}
	return items
}
