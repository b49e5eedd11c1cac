package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.aimuz.me/sayclip/history"
	"go.aimuz.me/sayclip/internal/types"
	"go.aimuz.me/sayclip/stt"
)

// ProcessAudio transcribes a base64-encoded WAV recording submitted by
// the frontend, copies the text to the clipboard and reports the
// outcome.
func (s *Service) ProcessAudio(audioB64 string) types.ProcessResult {
	wavData, err := decodeAudioPayload(audioB64)
	if err != nil {
		slog.Error("decode audio payload", "error", err)
		return types.ProcessResult{Success: false, Stage: "error", Message: err.Error()}
	}
	return s.processWAV(context.Background(), wavData)
}

// processWAV runs one finished recording through transcription,
// clipboard and history. It is also the session's submit function.
func (s *Service) processWAV(ctx context.Context, wavData []byte) types.ProcessResult {
	provider := s.getProvider()
	if provider == nil || !provider.IsReady() {
		return types.ProcessResult{Success: false, Stage: "error", Message: "API key not configured"}
	}

	started := time.Now()
	result, err := provider.Transcribe(ctx, stt.Request{
		WAV:      wavData,
		Filename: started.Format("recording_20060102_150405") + ".wav",
		Language: s.cfg.OpenAI.Language,
		Prompt:   s.cfg.OpenAI.Prompt,
	})
	if err != nil {
		slog.Error("transcription failed", "error", err)
		return types.ProcessResult{Success: false, Stage: "error", Message: err.Error()}
	}

	text := result.Text

	copied := false
	if err := s.copyText(text); err != nil {
		slog.Warn("copy to clipboard", "error", err)
	} else {
		copied = true
	}

	s.recordHistory(text, copied)
	s.notifyDone(text)

	slog.Info("transcription complete",
		"chars", len(text),
		"copied", copied,
		"took", time.Since(started).Round(time.Millisecond),
	)

	return types.ProcessResult{
		Success: true,
		Stage:   "done",
		Message: "Transcription complete",
		Text:    text,
		Copied:  copied,
	}
}

// decodeAudioPayload accepts plain base64 or a data URL.
func decodeAudioPayload(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		if i := strings.Index(payload, ","); i >= 0 {
			payload = payload[i+1:]
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}
	return data, nil
}

func (s *Service) recordHistory(text string, copied bool) {
	if s.history == nil || text == "" {
		return
	}
	if err := s.history.Add(history.Entry{Text: text, Copied: copied}, history.DefaultTTL); err != nil {
		slog.Warn("store transcription", "error", err)
	}
}

func (s *Service) notifyDone(text string) {
	if s.cfg.DisableNotifications || text == "" {
		return
	}

	preview := text
	if r := []rune(preview); len(r) > 80 {
		preview = string(r[:80]) + "..."
	}
	if err := s.notify("SayClip", preview); err != nil {
		slog.Warn("send notification", "error", err)
	}
}
