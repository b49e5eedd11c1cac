package app

import (
	"log/slog"
	"time"

	"go.aimuz.me/sayclip/audiocapture"
	"go.aimuz.me/sayclip/internal/types"
	"go.aimuz.me/sayclip/recording"
	"go.aimuz.me/sayclip/viz"
)

func (s *Service) setupSession() {
	session, err := recording.NewSession(recording.Config{
		Capture: s.openCapture,
		Submit:  s.processWAV,
		Feed:    s.analyzer,
		Gate: recording.GateConfig{
			Threshold:    float32(s.cfg.Speech.Threshold),
			MinSpeechDur: s.cfg.Speech.MinSpeech(),
			SilenceDur:   s.cfg.Speech.Silence(),
		},
		Callbacks: recording.Callbacks{
			OnState:  s.onRecordingState,
			OnTick:   s.onTimerTick,
			OnSpeech: s.onSpeechDetected,
			OnResult: s.onTranscriptionResult,
		},
	})
	if err != nil {
		slog.Error("init recording session", "error", err)
		return
	}
	s.session = session
}

func (s *Service) openCapture() (recording.Source, error) {
	capture, err := audiocapture.New(audiocapture.Config{
		SampleRate:      s.cfg.Audio.SampleRate,
		FramesPerBuffer: s.cfg.Audio.FramesPerBuffer,
	})
	if err != nil {
		return nil, err
	}
	return capture, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Recording
// ─────────────────────────────────────────────────────────────────────────────

// ToggleRecording flips between idle and recording. Safe to call from
// the hotkey and the frontend at the same time.
func (s *Service) ToggleRecording() error {
	return s.session.Toggle()
}

// StartRecording opens the microphone and begins a new session.
func (s *Service) StartRecording() error {
	return s.session.Start()
}

// StopRecording finishes the current session and submits it for
// transcription when speech was detected.
func (s *Service) StopRecording() error {
	return s.session.Stop()
}

// GetStatus reports the current session state for the frontend.
func (s *Service) GetStatus() types.SessionStatus {
	st := s.session.Status()
	return types.SessionStatus{
		State:     st.State.String(),
		Recording: st.State == recording.StateRecording,
		HasSpeech: st.HasSpeech,
		Elapsed:   st.Elapsed.Milliseconds(),
		Clock:     recording.FormatClock(st.Elapsed),
	}
}

// Resize recomputes the visualization geometry for a new canvas size
// and returns it so the caller can apply it synchronously.
func (s *Service) Resize(width, height, dpr float64) viz.BarConfig {
	return s.renderer.Resize(width, height, dpr)
}

// ─────────────────────────────────────────────────────────────────────────────
// Session callbacks
// ─────────────────────────────────────────────────────────────────────────────

func (s *Service) onRecordingState(state recording.State) {
	if state == recording.StateRecording {
		s.renderer.Activate()
	} else {
		s.renderer.Deactivate()
	}

	s.emit(EventRecordingState, RecordingState{
		State:     state.String(),
		Recording: state == recording.StateRecording,
	})
}

func (s *Service) onTimerTick(elapsed time.Duration) {
	s.emit(EventTimerTick, TimerTick{
		Clock:   recording.FormatClock(elapsed),
		Elapsed: elapsed.Milliseconds(),
	})
}

func (s *Service) onSpeechDetected() {
	s.emit(EventSpeechDetected, true)
}

func (s *Service) onTranscriptionResult(result types.ProcessResult) {
	s.emit(EventTranscriptionResult, result)
}
