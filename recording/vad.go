package recording

import (
	"math"
	"time"
)

// VAD (Voice Activity Detector) detects speech in audio streams.
type VAD struct {
	// Thresholds
	threshold float32 // RMS threshold for speech detection

	// Duration constraints
	minSpeechDur time.Duration // Minimum speech duration before a segment counts
	silenceDur   time.Duration // Silence duration to end speech

	// State
	inSpeech    bool
	speechStart time.Time
	lastSpeech  time.Time
}

// NewVAD creates a new voice activity detector with given thresholds.
func NewVAD(threshold float32, minSpeech, silence time.Duration) *VAD {
	return &VAD{
		threshold:    threshold,
		minSpeechDur: minSpeech,
		silenceDur:   silence,
	}
}

// SpeechEvent represents a detected speech event.
type SpeechEvent struct {
	Type      EventType
	Timestamp time.Time
	// Duration is only populated for SpeechEnd events
	Duration time.Duration
}

// EventType represents the type of speech event.
type EventType int

const (
	EventNone EventType = iota // No event
	EventSpeechStart
	EventSpeechContinue
	EventSpeechEnd
)

// Process processes audio samples and returns the detected speech event.
// SpeechStart fires on the first block whose RMS crosses the threshold;
// SpeechEnd is only classified after silenceDur of quiet following at
// least minSpeechDur of speech. sampleRate is accepted for symmetry with
// the capture callback but durations are wall-clock based.
func (v *VAD) Process(samples []float32, sampleRate int) SpeechEvent {
	now := time.Now()

	rms := calculateRMS(samples)
	isSpeech := rms > v.threshold

	event := SpeechEvent{
		Timestamp: now,
		Type:      EventNone,
	}

	if isSpeech {
		if !v.inSpeech {
			v.inSpeech = true
			v.speechStart = now
			event.Type = EventSpeechStart
		} else {
			event.Type = EventSpeechContinue
		}
		v.lastSpeech = now
		return event
	}

	if !v.inSpeech {
		return event
	}

	speechDuration := now.Sub(v.speechStart)
	silenceDuration := now.Sub(v.lastSpeech)

	if silenceDuration > v.silenceDur && speechDuration > v.minSpeechDur {
		v.inSpeech = false
		event.Type = EventSpeechEnd
		event.Duration = speechDuration
	}

	return event
}

// Reset resets the VAD state. Useful when restarting or clearing state.
func (v *VAD) Reset() {
	v.inSpeech = false
	v.speechStart = time.Time{}
	v.lastSpeech = time.Time{}
}

// InSpeech returns true if currently in a speech segment.
func (v *VAD) InSpeech() bool {
	return v.inSpeech
}

// calculateRMS calculates the root mean square of audio samples.
func calculateRMS(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return float32(math.Sqrt(sum / float64(len(samples))))
}
