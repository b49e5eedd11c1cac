package audiocapture

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// portaudioImpl drives the default input device through PortAudio. Each
// instance owns one stream. Initialize and Terminate are reference
// counted by the library, so pairing them per stream is safe even with
// overlapping captures.
type portaudioImpl struct {
	framesPerBuffer int
	stream          *portaudio.Stream
}

func newCaptureImpl(framesPerBuffer int) captureImpl {
	return &portaudioImpl{framesPerBuffer: framesPerBuffer}
}

func (p *portaudioImpl) start(sampleRate int, callback func(samples []float32)) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize portaudio: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), p.framesPerBuffer,
		func(in []float32) {
			callback(in)
		})
	if err != nil {
		p.terminate()
		return fmt.Errorf("open input stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		p.terminate()
		return fmt.Errorf("start input stream: %w", err)
	}

	p.stream = stream
	return nil
}

// stop tears the stream down step by step. Later steps still run when an
// earlier one fails; the first error is returned.
func (p *portaudioImpl) stop() error {
	if p.stream == nil {
		return nil
	}

	var firstErr error
	if err := p.stream.Stop(); err != nil {
		firstErr = fmt.Errorf("stop input stream: %w", err)
	}
	if err := p.stream.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close input stream: %w", err)
	}
	p.stream = nil

	if err := portaudio.Terminate(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("terminate portaudio: %w", err)
	}
	return firstErr
}

func (p *portaudioImpl) isCapturing() bool {
	return p.stream != nil
}

func (p *portaudioImpl) terminate() {
	// Balance the Initialize from start; nothing useful to do on failure.
	_ = portaudio.Terminate()
}
