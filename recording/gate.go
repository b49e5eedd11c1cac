package recording

import "time"

// GateConfig holds thresholds for the speech gate.
type GateConfig struct {
	Threshold    float32       // RMS threshold, default 0.015
	MinSpeechDur time.Duration // default 300ms, segment classification only
	SilenceDur   time.Duration // default 400ms, segment classification only
}

// DefaultGateConfig returns thresholds tuned for close-mic dictation.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		Threshold:    0.015,
		MinSpeechDur: 300 * time.Millisecond,
		SilenceDur:   400 * time.Millisecond,
	}
}

// SpeechGate wraps a VAD and latches once any speech is heard. The latch
// is sticky for the lifetime of a recording session: later silence does
// not clear it, only Reset does.
type SpeechGate struct {
	vad     *VAD
	latched bool
}

// NewSpeechGate creates a gate with the given thresholds. Zero fields
// fall back to the defaults.
func NewSpeechGate(cfg GateConfig) *SpeechGate {
	def := DefaultGateConfig()
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.MinSpeechDur == 0 {
		cfg.MinSpeechDur = def.MinSpeechDur
	}
	if cfg.SilenceDur == 0 {
		cfg.SilenceDur = def.SilenceDur
	}
	return &SpeechGate{
		vad: NewVAD(cfg.Threshold, cfg.MinSpeechDur, cfg.SilenceDur),
	}
}

// Process feeds samples through the detector and reports whether this
// call latched the gate for the first time.
func (g *SpeechGate) Process(samples []float32, sampleRate int) bool {
	event := g.vad.Process(samples, sampleRate)
	if event.Type == EventSpeechStart && !g.latched {
		g.latched = true
		return true
	}
	return false
}

// HasSpeech reports whether any speech has been heard since the last Reset.
func (g *SpeechGate) HasSpeech() bool {
	return g.latched
}

// Reset clears the latch and the detector state.
func (g *SpeechGate) Reset() {
	g.latched = false
	g.vad.Reset()
}
