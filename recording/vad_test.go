package recording

import (
	"testing"
	"time"
)

// TestVAD_SpeechDetection tests basic speech detection functionality
func TestVAD_SpeechDetection(t *testing.T) {
	tests := []struct {
		name          string
		samples       []float32
		wantEventType EventType
		wantInSpeech  bool
	}{
		{
			name:          "silence - no speech",
			samples:       makeSilence(1000),
			wantEventType: EventNone,
			wantInSpeech:  false,
		},
		{
			name:          "speech start - loud audio",
			samples:       makeSpeech(1000, 0.05),
			wantEventType: EventSpeechStart,
			wantInSpeech:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVAD(
				0.02,                 // threshold
				300*time.Millisecond, // minSpeech
				400*time.Millisecond, // silence
			)

			event := v.Process(tt.samples, 16000)

			if event.Type != tt.wantEventType {
				t.Errorf("Type = %v, want %v", event.Type, tt.wantEventType)
			}
			if v.InSpeech() != tt.wantInSpeech {
				t.Errorf("InSpeech() = %v, want %v", v.InSpeech(), tt.wantInSpeech)
			}
		})
	}
}

// TestVAD_SpeechSequence tests a realistic sequence of speech events
func TestVAD_SpeechSequence(t *testing.T) {
	v := NewVAD(0.02, 300*time.Millisecond, 400*time.Millisecond)

	sequence := []struct {
		name          string
		samples       []float32
		sleep         time.Duration
		wantEventType EventType
	}{
		{
			name:          "1. start with silence",
			samples:       makeSilence(1000),
			wantEventType: EventNone,
		},
		{
			name:          "2. speech starts",
			samples:       makeSpeech(1000, 0.05),
			wantEventType: EventSpeechStart,
		},
		{
			name:          "3. speech continues",
			samples:       makeSpeech(1000, 0.04),
			sleep:         100 * time.Millisecond,
			wantEventType: EventSpeechContinue,
		},
		{
			name:          "4. more speech",
			samples:       makeSpeech(1000, 0.03),
			sleep:         250 * time.Millisecond,
			wantEventType: EventSpeechContinue,
		},
		{
			name:          "5. silence ends the segment",
			samples:       makeSilence(1000),
			sleep:         500 * time.Millisecond,
			wantEventType: EventSpeechEnd,
		},
		{
			name:          "6. more silence - nothing",
			samples:       makeSilence(1000),
			wantEventType: EventNone,
		},
	}

	for _, step := range sequence {
		t.Run(step.name, func(t *testing.T) {
			if step.sleep > 0 {
				time.Sleep(step.sleep)
			}

			event := v.Process(step.samples, 16000)

			if event.Type != step.wantEventType {
				t.Errorf("Type = %v, want %v", event.Type, step.wantEventType)
			}
		})
	}
}

// TestVAD_Reset tests that Reset clears all state
func TestVAD_Reset(t *testing.T) {
	v := NewVAD(0.02, 300*time.Millisecond, 400*time.Millisecond)

	// Trigger speech
	v.Process(makeSpeech(1000, 0.05), 16000)

	if !v.InSpeech() {
		t.Fatal("Expected InSpeech() = true before reset")
	}

	v.Reset()

	if v.InSpeech() {
		t.Error("Expected InSpeech() = false after reset")
	}

	// Should be able to detect speech again
	event := v.Process(makeSpeech(1000, 0.05), 16000)
	if event.Type != EventSpeechStart {
		t.Errorf("After reset, got Type = %v, want EventSpeechStart", event.Type)
	}
}

// TestCalculateRMS tests RMS calculation
func TestCalculateRMS(t *testing.T) {
	tests := []struct {
		name    string
		samples []float32
		want    float32
	}{
		{
			name:    "empty samples",
			samples: []float32{},
			want:    0,
		},
		{
			name:    "all zeros",
			samples: []float32{0, 0, 0, 0},
			want:    0,
		},
		{
			name:    "simple positive values",
			samples: []float32{0.1, 0.1, 0.1, 0.1},
			want:    0.1,
		},
		{
			name:    "mixed positive/negative",
			samples: []float32{0.3, -0.3, 0.3, -0.3},
			want:    0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateRMS(tt.samples)
			// Allow small floating point error
			if abs(got-tt.want) > 0.001 {
				t.Errorf("calculateRMS() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Helper functions for generating test audio

func makeSilence(samples int) []float32 {
	return make([]float32, samples)
}

func makeSpeech(samples int, amplitude float32) []float32 {
	result := make([]float32, samples)
	for i := range result {
		// Simple sine wave to simulate speech
		result[i] = amplitude * float32(0.5+0.5*float64(i%2))
	}
	return result
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
