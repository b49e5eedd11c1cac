// Package audiocapture provides microphone capture through PortAudio.
package audiocapture

import (
	"errors"
	"sync"
)

// ErrAlreadyCapturing is returned when trying to start capture while already capturing.
var ErrAlreadyCapturing = errors.New("already capturing audio")

// Capture records from the default input device and fans samples out to
// registered callbacks. One Capture owns at most one live stream; Stop is
// safe to call repeatedly.
type Capture struct {
	mu sync.RWMutex

	capturing  bool
	sampleRate int

	// Callbacks
	onAudio []func(samples []float32)

	// Platform implementation
	impl captureImpl
}

// captureImpl is the backend capture implementation interface.
type captureImpl interface {
	start(sampleRate int, callback func(samples []float32)) error
	stop() error
	isCapturing() bool
}

// Config holds configuration for audio capture.
type Config struct {
	SampleRate      int // default 16000 Hz (what Whisper expects)
	FramesPerBuffer int // samples per callback, default 1024
}

// DefaultConfig returns the default capture configuration.
func DefaultConfig() Config {
	return Config{
		SampleRate:      16000,
		FramesPerBuffer: 1024,
	}
}

// New creates a new audio capture instance.
func New(cfg Config) (*Capture, error) {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	if cfg.FramesPerBuffer == 0 {
		cfg.FramesPerBuffer = 1024
	}

	return &Capture{
		sampleRate: cfg.SampleRate,
		onAudio:    make([]func(samples []float32), 0),
		impl:       newCaptureImpl(cfg.FramesPerBuffer),
	}, nil
}

// Start begins capturing from the default input device.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capturing {
		return ErrAlreadyCapturing
	}

	err := c.impl.start(c.sampleRate, func(samples []float32) {
		c.handleAudio(samples)
	})
	if err != nil {
		return err
	}

	c.capturing = true
	return nil
}

// Stop stops capturing audio. Stopping an idle capture is a no-op.
func (c *Capture) Stop() error {
	c.mu.Lock()
	if !c.capturing {
		c.mu.Unlock()
		return nil
	}
	c.capturing = false
	impl := c.impl
	c.mu.Unlock()

	// Stop outside the lock: the backend waits for in-flight callbacks,
	// and those callbacks take the read lock in handleAudio.
	return impl.stop()
}

// IsCapturing returns true if currently capturing audio.
func (c *Capture) IsCapturing() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.capturing
}

// OnAudio registers a callback for audio data.
// The callback receives float32 samples in the range [-1, 1]. The slice
// is reused between callbacks; retain a copy, not the slice.
func (c *Capture) OnAudio(callback func(samples []float32)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAudio = append(c.onAudio, callback)
}

// handleAudio fans incoming samples out to registered callbacks.
func (c *Capture) handleAudio(samples []float32) {
	c.mu.RLock()
	callbacks := c.onAudio
	c.mu.RUnlock()

	for _, cb := range callbacks {
		cb(samples)
	}
}

// SampleRate returns the configured sample rate.
func (c *Capture) SampleRate() int {
	return c.sampleRate
}
