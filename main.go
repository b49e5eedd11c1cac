package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"

	"go.aimuz.me/sayclip/config"
	"go.aimuz.me/sayclip/internal/app"
	"go.aimuz.me/sayclip/internal/types"
	"go.aimuz.me/sayclip/viz"
)

//go:embed all:frontend/dist
var assets embed.FS

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// App is the application service bound to Wails. It is a thin facade
// over internal/app.Service so every frontend call goes through one
// binding name.
type App struct {
	svc *app.Service
}

func NewApp() *App {
	return &App{svc: app.New(version)}
}

// Init initializes the service with references to app and window.
func (a *App) Init(wailsApp *application.App, window application.Window) {
	a.svc.Init(wailsApp, window)
}

// Shutdown cleans up resources.
func (a *App) Shutdown() {
	a.svc.Shutdown()
}

// ─────────────────────────────────────────────────────────────────────────────
// Recording
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) ToggleRecording() error {
	return a.svc.ToggleRecording()
}

func (a *App) StartRecording() error {
	return a.svc.StartRecording()
}

func (a *App) StopRecording() error {
	return a.svc.StopRecording()
}

func (a *App) GetStatus() types.SessionStatus {
	return a.svc.GetStatus()
}

// ProcessAudio transcribes a base64 WAV recording captured by the
// frontend and copies the text to the clipboard.
func (a *App) ProcessAudio(audioB64 string) types.ProcessResult {
	return a.svc.ProcessAudio(audioB64)
}

// Resize updates the visualization geometry for a new canvas size.
func (a *App) Resize(width, height, dpr float64) viz.BarConfig {
	return a.svc.Resize(width, height, dpr)
}

// ─────────────────────────────────────────────────────────────────────────────
// Setup & Settings
// ─────────────────────────────────────────────────────────────────────────────

func (a *App) HasAPIKey() bool {
	return a.svc.HasAPIKey()
}

func (a *App) ValidateAndSaveKey(key string) types.KeyStatus {
	return a.svc.ValidateAndSaveKey(key)
}

func (a *App) GetSettings() types.Settings {
	return a.svc.GetSettings()
}

func (a *App) SaveSettings(settings types.Settings) error {
	return a.svc.SaveSettings(settings)
}

func (a *App) GetLanguages() []types.LanguageOption {
	return a.svc.GetLanguages()
}

func (a *App) GetHistory(limit int) []types.Transcription {
	return a.svc.GetHistory(limit)
}

func (a *App) GetVersion() string {
	return a.svc.GetVersion()
}

// CloseWindow shuts the application down from the frontend.
func (a *App) CloseWindow() {
	a.svc.CloseWindow()
}

// ─────────────────────────────────────────────────────────────────────────────
// Main Entry
// ─────────────────────────────────────────────────────────────────────────────

func main() {
	slog.Info("starting app", "version", version, "commit", commit, "date", date)
	appService := NewApp()

	// The window layout depends on whether a key is already configured:
	// without one the app boots straight into the setup page.
	hasKey := false
	if cfg, err := config.Load(); err != nil {
		slog.Error("load config", "error", err)
	} else {
		hasKey = cfg.APIKey() != ""
	}

	wailsApp := application.New(application.Options{
		Name:        "SayClip",
		Description: "Voice to clipboard",
		Services: []application.Service{
			application.NewService(appService),
		},
		Assets: application.AssetOptions{
			Handler: application.BundledAssetFileServer(assets),
		},
		Mac: application.MacOptions{
			ApplicationShouldTerminateAfterLastWindowClosed: true,
		},
	})

	opts := application.WebviewWindowOptions{
		Title:           "SayClip",
		Width:           500,
		Height:          50,
		DisableResize:   true,
		AlwaysOnTop:     true,
		URL:             "/",
		DevToolsEnabled: os.Getenv("SAYCLIP_DEBUG") == "1",
	}
	if !hasKey {
		opts.Title = "SayClip Setup"
		opts.Width = 400
		opts.Height = 280
		opts.URL = "/setup.html"
	}
	window := wailsApp.Window.NewWithOptions(opts)

	// Intercept window close so the recording session is torn down
	// before the process exits.
	window.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		e.Cancel()
		appService.CloseWindow()
	})

	appService.Init(wailsApp, window)

	if err := wailsApp.Run(); err != nil {
		slog.Error("run app", "error", err)
	}
}
