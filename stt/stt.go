// Package stt provides the speech-to-text provider interface and the
// OpenAI Whisper API implementation.
package stt

import (
	"context"
	"errors"
)

// ErrNotReady is returned by Transcribe when the provider has no usable
// credentials.
var ErrNotReady = errors.New("stt: provider not ready")

// Request carries one finished recording to a provider.
type Request struct {
	WAV      []byte // complete WAV file, mono 16-bit PCM
	Filename string // upload filename, optional
	Language string // language hint; "" or "auto" lets the service detect
	Prompt   string // optional transcription prompt
}

// Result is the transcription outcome.
type Result struct {
	Text string `json:"text"`
}

// Provider converts finished recordings to text. Implementations must be
// safe for concurrent use.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// IsReady reports whether the provider can accept work.
	IsReady() bool

	// Transcribe converts one recording to text.
	Transcribe(ctx context.Context, req Request) (*Result, error)

	// Close releases resources held by the provider.
	Close() error
}
