package analysis

import "sync"

// RingBuffer keeps the most recent audio samples for analysis windows.
// It is safe for concurrent use by the capture callback and the render
// loop.
type RingBuffer struct {
	mu       sync.RWMutex
	data     []float32
	writePos int
	filled   int
}

// NewRingBuffer creates a ring buffer holding size samples.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{data: make([]float32, size)}
}

// Write appends samples, overwriting the oldest when full.
func (rb *RingBuffer) Write(samples []float32) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	size := len(rb.data)
	if len(samples) >= size {
		// Only the tail fits; take it wholesale.
		copy(rb.data, samples[len(samples)-size:])
		rb.writePos = 0
		rb.filled = size
		return
	}

	n := copy(rb.data[rb.writePos:], samples)
	if n < len(samples) {
		copy(rb.data, samples[n:])
	}
	rb.writePos = (rb.writePos + len(samples)) % size
	if rb.filled += len(samples); rb.filled > size {
		rb.filled = size
	}
}

// Read returns the last n samples, oldest first. Fewer are returned when
// the buffer holds fewer.
func (rb *RingBuffer) Read(n int) []float32 {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if n > rb.filled {
		n = rb.filled
	}
	if n == 0 {
		return nil
	}

	size := len(rb.data)
	start := (rb.writePos - n + size) % size
	result := make([]float32, n)
	m := copy(result, rb.data[start:min(start+n, size)])
	if m < n {
		copy(result[m:], rb.data[:n-m])
	}
	return result
}

// Clear empties the buffer.
func (rb *RingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.writePos = 0
	rb.filled = 0
}

// Len returns the number of samples in the buffer.
func (rb *RingBuffer) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.filled
}
