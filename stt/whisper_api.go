package stt

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// WhisperAPI implements the Provider interface using OpenAI's hosted
// transcription API.
type WhisperAPI struct {
	client openai.Client
	model  string

	mu    sync.RWMutex
	ready bool
}

// WhisperAPIConfig holds configuration for WhisperAPI.
type WhisperAPIConfig struct {
	APIKey  string
	BaseURL string // optional, defaults to OpenAI's API
	Model   string // optional, defaults to "whisper-1"
}

// NewWhisperAPI creates a new WhisperAPI provider.
func NewWhisperAPI(cfg WhisperAPIConfig) *WhisperAPI {
	model := cfg.Model
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}

	// Retries are disabled: the user is watching a spinner, and a
	// failed upload should surface immediately rather than replay a
	// multi-second request.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(60 * time.Second),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &WhisperAPI{
		client: openai.NewClient(opts...),
		model:  model,
		ready:  cfg.APIKey != "",
	}
}

func (w *WhisperAPI) Name() string { return "whisper-api" }

func (w *WhisperAPI) IsReady() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ready
}

// Transcribe uploads one finished recording and returns the cleaned
// transcript.
func (w *WhisperAPI) Transcribe(ctx context.Context, req Request) (*Result, error) {
	if !w.IsReady() {
		return nil, ErrNotReady
	}
	if len(req.WAV) == 0 {
		return nil, fmt.Errorf("stt: empty recording")
	}

	filename := req.Filename
	if filename == "" {
		filename = "audio.wav"
	}

	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(w.model),
		File:  openai.File(bytes.NewReader(req.WAV), filename, "audio/wav"),
	}
	if req.Prompt != "" {
		params.Prompt = openai.String(req.Prompt)
	}
	// The API rejects "auto"; omitting the field means auto-detect.
	if req.Language != "" && req.Language != "auto" {
		params.Language = openai.String(req.Language)
	}

	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}

	return &Result{Text: cleanTranscript(resp.Text)}, nil
}

func (w *WhisperAPI) Close() error {
	return nil
}
