// Package app provides the core application service for Wails bindings.
package app

// Event names for frontend communication.
const (
	EventRecordingState      = "recording-state"
	EventTimerTick           = "timer-tick"
	EventSpeechDetected      = "speech-detected"
	EventTranscriptionResult = "transcription-result"
	EventVizConfig           = "viz-config"
	EventVizFrame            = "viz-frame"
	EventAPIKeySaved         = "api-key-saved"
)

// RecordingState is the payload for recording-state events.
type RecordingState struct {
	State     string `json:"state"`
	Recording bool   `json:"recording"`
}

// TimerTick is the payload for timer-tick events.
type TimerTick struct {
	Clock   string `json:"clock"`   // formatted MM:SS
	Elapsed int64  `json:"elapsed"` // milliseconds
}
