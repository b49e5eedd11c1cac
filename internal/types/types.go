// Package types provides shared type definitions for the application.
package types

// ProcessResult is the outcome of submitting a finished recording for
// transcription. Message carries a short human-readable status; details
// of failures go to the log, not here.
type ProcessResult struct {
	Success bool   `json:"success"`
	Stage   string `json:"stage,omitempty"`   // "done", "skipped" or "error"
	Message string `json:"message,omitempty"` // short status for the UI
	Text    string `json:"text,omitempty"`    // transcribed text on success
	Copied  bool   `json:"copied"`            // whether the text reached the clipboard
}

// KeyStatus is the result of validating and saving an API key.
type KeyStatus struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SessionStatus reports the recording session state to the frontend.
type SessionStatus struct {
	State     string `json:"state"`
	Recording bool   `json:"recording"`
	HasSpeech bool   `json:"hasSpeech"`
	Elapsed   int64  `json:"elapsed"` // milliseconds since recording started
	Clock     string `json:"clock"`   // formatted MM:SS
}

// Settings is the user-editable subset of the configuration.
type Settings struct {
	Model         string `json:"model"`
	Prompt        string `json:"prompt"`
	Language      string `json:"language"` // ISO 639-1 hint, empty for auto
	Notifications bool   `json:"notifications"`
	HotkeyEnabled bool   `json:"hotkeyEnabled"`
}

// LanguageOption describes a selectable transcription language hint.
type LanguageOption struct {
	Code       string `json:"code"`
	Name       string `json:"name"`       // English name
	NativeName string `json:"nativeName"` // name in the language itself
}

// Transcription is a stored history entry.
type Transcription struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Copied    bool   `json:"copied"`
	CreatedAt int64  `json:"createdAt"` // Unix timestamp in milliseconds
}
