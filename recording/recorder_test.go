package recording

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-audio/wav"
)

// TestRecorder_AppendOrder verifies chunks are kept in arrival order and
// that the recorder copies the caller's slice.
func TestRecorder_AppendOrder(t *testing.T) {
	r := NewRecorder(16000)

	chunk := []float32{0.5, 0.5, 0.5}
	r.Append(chunk)
	chunk[0] = -1 // must not affect the stored copy
	r.Append([]float32{-0.25, -0.25})

	if got := r.ChunkCount(); got != 2 {
		t.Fatalf("ChunkCount() = %d, want 2", got)
	}

	data := decodeWAV(t, finalize(t, r))
	if len(data) != 5 {
		t.Fatalf("decoded %d samples, want 5", len(data))
	}

	// 0.5 -> 16383, -0.25 -> -8191 in 16-bit PCM
	if data[0] != 16383 {
		t.Errorf("first sample = %d, want 16383 (mutated input leaked in?)", data[0])
	}
	if data[3] != -8191 {
		t.Errorf("fourth sample = %d, want -8191", data[3])
	}
}

// TestRecorder_Clamp verifies out-of-range samples are clamped before
// conversion instead of wrapping around.
func TestRecorder_Clamp(t *testing.T) {
	r := NewRecorder(16000)
	r.Append([]float32{2.0, -3.0})

	data := decodeWAV(t, finalize(t, r))
	if data[0] != 32767 {
		t.Errorf("clamped high sample = %d, want 32767", data[0])
	}
	if data[1] != -32767 {
		t.Errorf("clamped low sample = %d, want -32767", data[1])
	}
}

// TestRecorder_EmptyFinalize verifies an empty recording still encodes
// to a valid WAV file.
func TestRecorder_EmptyFinalize(t *testing.T) {
	r := NewRecorder(16000)

	data := decodeWAV(t, finalize(t, r))
	if len(data) != 0 {
		t.Errorf("decoded %d samples from empty recording, want 0", len(data))
	}
}

// TestRecorder_Reset verifies Reset discards accumulated audio.
func TestRecorder_Reset(t *testing.T) {
	r := NewRecorder(16000)
	r.Append(makeSpeech(1600, 0.1))
	r.Reset()

	if got := r.ChunkCount(); got != 0 {
		t.Errorf("ChunkCount() after Reset = %d, want 0", got)
	}
	if got := r.Duration(); got != 0 {
		t.Errorf("Duration() after Reset = %v, want 0", got)
	}
}

// TestRecorder_Duration verifies duration math at the configured rate.
func TestRecorder_Duration(t *testing.T) {
	r := NewRecorder(16000)
	r.Append(make([]float32, 16000))

	if got := r.Duration(); got != time.Second {
		t.Errorf("Duration() = %v, want 1s", got)
	}
}

func finalize(t *testing.T, r *Recorder) []byte {
	t.Helper()
	data, err := r.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return data
}

func decodeWAV(t *testing.T, data []byte) []int {
	t.Helper()

	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		t.Fatal("Finalize produced an invalid WAV file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode WAV: %v", err)
	}
	if d.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", d.SampleRate)
	}
	if d.NumChans != 1 {
		t.Errorf("NumChans = %d, want 1", d.NumChans)
	}
	return buf.Data
}
