// Package analysis turns captured samples into byte-scaled frequency
// bins for the visualizer. The pipeline follows the Web Audio
// AnalyserNode: Blackman window, FFT, magnitude smoothing over time,
// then a decibel mapping onto 0..255.
package analysis

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	defaultFFTSize   = 512
	defaultSmoothing = 0.8

	minDecibels = -100.0
	maxDecibels = -30.0
)

// Config holds analyzer tuning.
type Config struct {
	FFTSize   int     // window length in samples, default 512
	Smoothing float64 // time smoothing constant in [0, 1), default 0.8
}

// Analyzer computes frequency frames over a sliding window of the most
// recent samples. Push is called from the capture callback; Bins from
// the render loop.
type Analyzer struct {
	mu        sync.Mutex
	fftSize   int
	smoothing float64
	fft       *fourier.FFT
	window    []float64 // Blackman coefficients
	ring      *RingBuffer
	smoothed  []float64 // smoothed magnitudes, one per bin
	seq       []float64 // scratch: windowed samples
	coeffs    []complex128
}

// New creates an analyzer. Zero config fields use the defaults.
func New(cfg Config) *Analyzer {
	if cfg.FFTSize == 0 {
		cfg.FFTSize = defaultFFTSize
	}
	if cfg.Smoothing == 0 {
		cfg.Smoothing = defaultSmoothing
	}

	n := cfg.FFTSize
	return &Analyzer{
		fftSize:   n,
		smoothing: cfg.Smoothing,
		fft:       fourier.NewFFT(n),
		window:    blackman(n),
		ring:      NewRingBuffer(n),
		smoothed:  make([]float64, n/2),
		seq:       make([]float64, n),
	}
}

// BinCount returns the number of frequency bins per frame.
func (a *Analyzer) BinCount() int {
	return a.fftSize / 2
}

// Push adds captured samples to the analysis window.
func (a *Analyzer) Push(samples []float32) {
	a.ring.Write(samples)
}

// Reset clears the window and the smoothing state.
func (a *Analyzer) Reset() {
	a.ring.Clear()
	a.mu.Lock()
	for i := range a.smoothed {
		a.smoothed[i] = 0
	}
	a.mu.Unlock()
}

// Bins computes the current frame. A silent or empty window yields all
// zeros once the smoothing has decayed.
func (a *Analyzer) Bins() []byte {
	recent := a.ring.Read(a.fftSize)

	a.mu.Lock()
	defer a.mu.Unlock()

	// Right-align a partial window so the newest samples carry the most
	// window weight.
	for i := range a.seq {
		a.seq[i] = 0
	}
	offset := a.fftSize - len(recent)
	for i, s := range recent {
		a.seq[offset+i] = float64(s) * a.window[offset+i]
	}

	a.coeffs = a.fft.Coefficients(a.coeffs, a.seq)

	bins := make([]byte, len(a.smoothed))
	k := a.smoothing
	scale := 1.0 / float64(a.fftSize)
	for i := range a.smoothed {
		mag := cmplx.Abs(a.coeffs[i]) * scale
		a.smoothed[i] = k*a.smoothed[i] + (1-k)*mag

		// Log10 of zero is -Inf, which clamps to the floor below.
		db := 20 * math.Log10(a.smoothed[i])
		v := (db - minDecibels) / (maxDecibels - minDecibels)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		bins[i] = byte(math.Round(v * 255))
	}
	return bins
}

// blackman returns the window coefficients used before the FFT.
func blackman(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		x := 2 * math.Pi * float64(i) / float64(n)
		w[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return w
}
