package recording

import "testing"

// TestSpeechGate_LatchOnce verifies the gate reports the first latch
// exactly once and stays latched afterwards.
func TestSpeechGate_LatchOnce(t *testing.T) {
	g := NewSpeechGate(GateConfig{Threshold: 0.02})

	if g.HasSpeech() {
		t.Fatal("new gate should not report speech")
	}

	if first := g.Process(makeSilence(1000), 16000); first {
		t.Error("silence latched the gate")
	}

	if first := g.Process(makeSpeech(1000, 0.05), 16000); !first {
		t.Error("first speech block did not report the latch")
	}
	if !g.HasSpeech() {
		t.Error("HasSpeech() = false after speech")
	}

	// The latch is reported only once, even for continued speech.
	if first := g.Process(makeSpeech(1000, 0.05), 16000); first {
		t.Error("second speech block reported the latch again")
	}
}

// TestSpeechGate_StickyThroughSilence verifies that later silence does
// not clear the latch.
func TestSpeechGate_StickyThroughSilence(t *testing.T) {
	g := NewSpeechGate(GateConfig{Threshold: 0.02})

	g.Process(makeSpeech(1000, 0.05), 16000)
	g.Process(makeSilence(1000), 16000)
	g.Process(makeSilence(1000), 16000)

	if !g.HasSpeech() {
		t.Error("silence cleared the latch")
	}
}

// TestSpeechGate_Reset verifies Reset clears the latch for a new session.
func TestSpeechGate_Reset(t *testing.T) {
	g := NewSpeechGate(GateConfig{Threshold: 0.02})

	g.Process(makeSpeech(1000, 0.05), 16000)
	g.Reset()

	if g.HasSpeech() {
		t.Error("HasSpeech() = true after Reset")
	}

	if first := g.Process(makeSpeech(1000, 0.05), 16000); !first {
		t.Error("speech after Reset did not latch again")
	}
}

// TestSpeechGate_Defaults verifies zero config fields pick up defaults.
func TestSpeechGate_Defaults(t *testing.T) {
	g := NewSpeechGate(GateConfig{})

	// Default threshold is 0.015; this block sits well above it.
	if first := g.Process(makeSpeech(1000, 0.05), 16000); !first {
		t.Error("default threshold did not latch on loud audio")
	}
}
