package recording

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder accumulates captured audio chunks in arrival order and
// finalizes them into a single WAV blob. It is safe for use from the
// capture callback while the session holds its own lock.
type Recorder struct {
	mu         sync.Mutex
	sampleRate int
	chunks     [][]float32
	samples    int
}

// NewRecorder creates a recorder for mono audio at the given sample rate.
func NewRecorder(sampleRate int) *Recorder {
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &Recorder{sampleRate: sampleRate}
}

// Append stores a copy of the chunk. Arrival order is preserved.
func (r *Recorder) Append(samples []float32) {
	if len(samples) == 0 {
		return
	}
	chunk := make([]float32, len(samples))
	copy(chunk, samples)

	r.mu.Lock()
	r.chunks = append(r.chunks, chunk)
	r.samples += len(chunk)
	r.mu.Unlock()
}

// ChunkCount returns the number of chunks appended so far.
func (r *Recorder) ChunkCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chunks)
}

// Duration returns the recorded audio length.
func (r *Recorder) Duration() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Duration(r.samples) * time.Second / time.Duration(r.sampleRate)
}

// Reset discards all accumulated chunks.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.chunks = nil
	r.samples = 0
	r.mu.Unlock()
}

// Finalize encodes everything appended so far as a 16-bit mono WAV file.
// The recorder keeps its chunks, so a failed submission can be retried by
// the caller if it chooses to.
func (r *Recorder) Finalize() ([]byte, error) {
	r.mu.Lock()
	chunks := r.chunks
	total := r.samples
	rate := r.sampleRate
	r.mu.Unlock()

	data := make([]int, 0, total)
	for _, chunk := range chunks {
		for _, s := range chunk {
			// Clamp to [-1, 1] and convert to 16-bit PCM
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			data = append(data, int(s*32767))
		}
	}

	buf := &wavBuffer{}
	enc := wav.NewEncoder(buf, rate, 16, 1, 1)
	if err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}); err != nil {
		return nil, fmt.Errorf("write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// wavBuffer is an in-memory io.WriteSeeker for the WAV encoder, which
// seeks back over the header to patch chunk sizes on Close.
type wavBuffer struct {
	data []byte
	pos  int
}

func (b *wavBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.data) {
		grown := make([]byte, need)
		copy(grown, b.data)
		b.data = grown
	}
	copy(b.data[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *wavBuffer) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(b.pos) + offset
	case io.SeekEnd:
		abs = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("wav buffer: invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("wav buffer: negative position %d", abs)
	}
	b.pos = int(abs)
	return abs, nil
}

// Bytes returns the encoded file contents.
func (b *wavBuffer) Bytes() []byte {
	return b.data
}
