// Package recording implements the microphone recording session: a small
// state machine that owns the audio stream for its lifetime, accumulates
// chunks, gates on detected speech, and hands the finished WAV blob to a
// submission callback.
package recording

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"go.aimuz.me/sayclip/internal/types"
)

// ErrNotIdle is returned when starting while a session is already active.
var ErrNotIdle = errors.New("recording: session not idle")

// ErrNotRecording is returned when stopping a session that is not recording.
var ErrNotRecording = errors.New("recording: session not recording")

// State is the lifecycle phase of a recording session.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateRecording
	StateStopping
	StateProcessing
)

// String returns the lowercase state name used in logs and events.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRecording:
		return "recording"
	case StateStopping:
		return "stopping"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Source is a live audio stream the session records from. A new Source is
// acquired for every recording and released when it ends; the session
// holds at most one live Source at any time.
type Source interface {
	Start() error
	Stop() error
	OnAudio(func(samples []float32))
	SampleRate() int
}

// CaptureFactory opens the audio device for one recording session.
type CaptureFactory func() (Source, error)

// Feed receives recorded samples for frequency analysis.
type Feed interface {
	Push(samples []float32)
	Reset()
}

// SubmitFunc delivers a finished WAV recording to the transcription
// backend and returns the outcome. It is called at most once per session,
// on its own goroutine, and is never called when no speech was detected.
type SubmitFunc func(ctx context.Context, wavData []byte) types.ProcessResult

// Callbacks notify the owner of session activity. All fields are
// optional. Callbacks are invoked from session goroutines, in some cases
// with internal locks held; implementations must be fast and must not
// call back into the Session.
type Callbacks struct {
	OnState  func(State)
	OnTick   func(elapsed time.Duration)
	OnSpeech func()
	OnResult func(types.ProcessResult)
}

// Config holds the session collaborators and tuning.
type Config struct {
	Capture   CaptureFactory
	Submit    SubmitFunc
	Feed      Feed       // optional visualization feed
	Gate      GateConfig // zero values use defaults
	TickEvery time.Duration
	Callbacks Callbacks
}

// Session coordinates one recording at a time through the states
// Idle -> Starting -> Recording -> Stopping -> Processing -> Idle.
// Failures on any path force the session back to Idle with the stream
// released.
type Session struct {
	mu         sync.Mutex
	state      State
	generation string
	startTime  time.Time
	hasSpeech  bool
	sampleRate int

	source   Source
	recorder *Recorder
	gate     *SpeechGate
	feed     Feed

	clockCancel context.CancelFunc

	cfg Config
	cb  Callbacks
}

// NewSession wires a session from its collaborators. Capture and Submit
// are required; everything else has defaults.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Capture == nil {
		return nil, errors.New("recording: capture factory required")
	}
	if cfg.Submit == nil {
		return nil, errors.New("recording: submit func required")
	}
	if cfg.TickEvery == 0 {
		cfg.TickEvery = 250 * time.Millisecond
	}
	return &Session{
		state: StateIdle,
		cfg:   cfg,
		cb:    cfg.Callbacks,
		gate:  NewSpeechGate(cfg.Gate),
		feed:  cfg.Feed,
	}, nil
}

// Start begins a new recording. It acquires the audio device, resets the
// speech gate and analysis feed, and starts the clock ticker. Returns
// ErrNotIdle if a session is already active.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return ErrNotIdle
	}
	s.toStateLocked(StateStarting)

	gen := uuid.New().String()
	s.generation = gen
	s.hasSpeech = false
	s.gate.Reset()
	if s.feed != nil {
		s.feed.Reset()
	}

	src, err := s.cfg.Capture()
	if err != nil {
		s.abortStartLocked()
		return fmt.Errorf("open audio device: %w", err)
	}

	s.sampleRate = src.SampleRate()
	s.recorder = NewRecorder(s.sampleRate)
	src.OnAudio(func(samples []float32) {
		s.handleAudio(gen, samples)
	})

	if err := src.Start(); err != nil {
		if stopErr := src.Stop(); stopErr != nil {
			slog.Warn("release audio stream", "error", stopErr)
		}
		s.abortStartLocked()
		return fmt.Errorf("start audio stream: %w", err)
	}

	s.source = src
	s.startTime = time.Now()
	s.startClockLocked()
	s.toStateLocked(StateRecording)

	slog.Info("recording started", "generation", gen, "sample_rate", s.sampleRate)
	return nil
}

// Stop ends the current recording. The stream is released before
// anything else runs, then the recorder is finalized and, if speech was
// heard, the WAV blob is submitted asynchronously. Without speech the
// backend is skipped and a "no speech" result is reported directly.
// Returns ErrNotRecording unless the session is recording.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return ErrNotRecording
	}
	s.toStateLocked(StateStopping)
	gen := s.generation
	src := s.detachSourceLocked()
	s.stopClockLocked()
	rec := s.recorder
	duration := time.Since(s.startTime)
	s.mu.Unlock()

	// Release the device before anything else can fail. Stopping outside
	// the lock also keeps the audio thread from deadlocking against us:
	// Source.Stop waits for in-flight callbacks, and those callbacks
	// take the session lock.
	releaseSource(src)

	wavData, err := rec.Finalize()
	if err != nil {
		slog.Error("finalize recording", "error", err)
		s.Cleanup()
		s.emitResult(types.ProcessResult{
			Success: false,
			Stage:   "error",
			Message: "Failed to encode recording",
		})
		return fmt.Errorf("finalize recording: %w", err)
	}

	s.mu.Lock()
	if gen != s.generation || s.state != StateStopping {
		s.mu.Unlock()
		slog.Debug("stop superseded", "generation", gen)
		return nil
	}
	s.toStateLocked(StateProcessing)
	hasSpeech := s.hasSpeech
	s.mu.Unlock()

	if !hasSpeech {
		s.finish(gen)
		s.emitResult(types.ProcessResult{
			Success: false,
			Stage:   "skipped",
			Message: "No speech detected",
		})
		slog.Info("recording skipped", "reason", "no speech", "duration", duration)
		return nil
	}

	slog.Info("recording stopped", "generation", gen, "duration", duration, "chunks", rec.ChunkCount())
	go s.process(gen, wavData)
	return nil
}

// Toggle starts a recording when idle and stops the active one when
// recording. Calls during transitional states are ignored.
func (s *Session) Toggle() error {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()

	switch state {
	case StateIdle:
		err := s.Start()
		if errors.Is(err, ErrNotIdle) {
			return nil
		}
		return err
	case StateRecording:
		err := s.Stop()
		if errors.Is(err, ErrNotRecording) {
			return nil
		}
		return err
	default:
		return nil
	}
}

// Cleanup forces the session back to Idle, releasing everything it
// holds. It is safe to call from any state and any number of times;
// per-resource failures are logged and do not stop the remaining steps.
func (s *Session) Cleanup() {
	s.mu.Lock()
	prev := s.state
	src := s.detachSourceLocked()
	s.stopClockLocked()
	if s.recorder != nil {
		s.recorder.Reset()
	}
	if s.feed != nil {
		s.feed.Reset()
	}
	if s.state != StateIdle {
		s.toStateLocked(StateIdle)
	}
	s.mu.Unlock()

	releaseSource(src)

	if prev != StateIdle {
		slog.Info("session cleaned up", "from", prev.String())
	}
}

// Status is a point-in-time snapshot of the session.
type Status struct {
	State     State
	HasSpeech bool
	Elapsed   time.Duration
}

// Status returns the current session snapshot. Elapsed is zero unless a
// recording is underway or winding down.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{State: s.state, HasSpeech: s.hasSpeech}
	switch s.state {
	case StateRecording, StateStopping, StateProcessing:
		st.Elapsed = time.Since(s.startTime)
	}
	return st
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// handleAudio receives samples from the capture callback. Chunks from a
// superseded generation, or outside the Recording state, are dropped.
func (s *Session) handleAudio(gen string, samples []float32) {
	s.mu.Lock()
	if s.state != StateRecording || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.recorder.Append(samples)
	if s.feed != nil {
		s.feed.Push(samples)
	}
	first := s.gate.Process(samples, s.sampleRate)
	if first {
		s.hasSpeech = true
	}
	s.mu.Unlock()

	if first {
		slog.Debug("speech detected", "generation", gen)
		s.emitSpeech()
	}
}

// process submits the finished recording and reports the outcome. A
// result arriving after the session was superseded is discarded.
func (s *Session) process(gen string, wavData []byte) {
	result := s.cfg.Submit(context.Background(), wavData)

	s.mu.Lock()
	if gen != s.generation || s.state != StateProcessing {
		s.mu.Unlock()
		slog.Debug("discarding result for superseded session", "generation", gen)
		return
	}
	s.toStateLocked(StateIdle)
	s.mu.Unlock()

	s.emitResult(result)
}

// finish returns to Idle if the given generation still owns the session.
func (s *Session) finish(gen string) {
	s.mu.Lock()
	if gen == s.generation && s.state == StateProcessing {
		s.toStateLocked(StateIdle)
	}
	s.mu.Unlock()
}

func (s *Session) abortStartLocked() {
	s.stopClockLocked()
	s.toStateLocked(StateIdle)
}

// detachSourceLocked removes and returns the live source, if any. The
// caller must release it with releaseSource after dropping the lock.
func (s *Session) detachSourceLocked() Source {
	src := s.source
	s.source = nil
	return src
}

func releaseSource(src Source) {
	if src == nil {
		return
	}
	if err := src.Stop(); err != nil {
		slog.Warn("release audio stream", "error", err)
	}
}

func (s *Session) startClockLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	s.clockCancel = cancel
	start := s.startTime
	interval := s.cfg.TickEvery

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.emitTick(time.Since(start))
			}
		}
	}()
}

func (s *Session) stopClockLocked() {
	if s.clockCancel != nil {
		s.clockCancel()
		s.clockCancel = nil
	}
}

func (s *Session) toStateLocked(next State) {
	s.state = next
	if s.cb.OnState != nil {
		s.cb.OnState(next)
	}
}

func (s *Session) emitTick(elapsed time.Duration) {
	if s.cb.OnTick != nil {
		s.cb.OnTick(elapsed)
	}
}

func (s *Session) emitSpeech() {
	if s.cb.OnSpeech != nil {
		s.cb.OnSpeech()
	}
}

func (s *Session) emitResult(result types.ProcessResult) {
	if s.cb.OnResult != nil {
		s.cb.OnResult(result)
	}
}
