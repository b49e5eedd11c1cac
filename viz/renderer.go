package viz

import (
	"context"
	"sync"
	"time"
)

const idleLabel = "Ready"

// Frame is one drawable frame handed to the surface.
type Frame struct {
	Heights []float64 `json:"heights"`
	Idle    bool      `json:"idle"`
	Label   string    `json:"label,omitempty"`
}

// Surface consumes geometry changes and frames, typically by forwarding
// them to the webview as events.
type Surface interface {
	ApplyConfig(cfg BarConfig)
	RenderFrame(frame Frame)
}

// BinSource supplies the current frequency frame to render.
type BinSource interface {
	Bins() []byte
	BinCount() int
}

// RendererConfig tunes the render loop. Zero values select the defaults.
type RendererConfig struct {
	TargetFPS int // frames per second, default 60
	MaxSkip   int // consecutive ticks the governor may drop, default 0
}

// Renderer owns the render loop. While active it samples the bin source
// on every tick and pushes bar heights to the surface; while inactive
// the surface holds the resting pattern.
type Renderer struct {
	surface  Surface
	source   BinSource
	interval time.Duration
	maxSkip  int

	mu        sync.Mutex
	cfg       *BarConfig
	active    bool
	cancel    context.CancelFunc
	lastFrame time.Time
	skipped   int
}

// NewRenderer creates a renderer over the given surface and bin source.
// No frames are produced until the first Resize establishes geometry.
func NewRenderer(surface Surface, source BinSource, rc RendererConfig) *Renderer {
	fps := rc.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	return &Renderer{
		surface:  surface,
		source:   source,
		interval: time.Second / time.Duration(fps),
		maxSkip:  rc.MaxSkip,
	}
}

// Resize recomputes geometry for the given canvas size. Identical
// dimensions return the cached config without touching the surface;
// a real change pushes the new config and, when the loop is not
// running, repaints the resting pattern at the new size.
func (r *Renderer) Resize(width, height, dpr float64) BarConfig {
	r.mu.Lock()
	if r.cfg != nil && r.cfg.Width == width && r.cfg.Height == height && r.cfg.DPR == dpr {
		cfg := *r.cfg
		r.mu.Unlock()
		return cfg
	}
	cfg := NewBarConfig(width, height, dpr, r.source.BinCount())
	r.cfg = &cfg
	active := r.active
	r.mu.Unlock()

	r.surface.ApplyConfig(cfg)
	if !active {
		r.drawIdle(cfg)
	}
	return cfg
}

// Activate starts the render loop. Calling it while already active is a
// no-op.
func (r *Renderer) Activate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.active = true
	r.cancel = cancel
	r.lastFrame = time.Time{}
	r.skipped = 0
	go r.loop(ctx)
}

// Deactivate stops the render loop and repaints the resting pattern.
func (r *Renderer) Deactivate() {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return
	}
	r.active = false
	cancel := r.cancel
	r.cancel = nil
	cfg := r.cfg
	r.mu.Unlock()

	cancel()
	if cfg != nil {
		r.drawIdle(*cfg)
	}
}

// Active reports whether the render loop is running.
func (r *Renderer) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

func (r *Renderer) loop(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.tick(now)
		}
	}
}

// tick renders one frame unless the governor elects to drop it. A tick
// is droppable when the previous frame is younger than one interval and
// the skip allowance is not yet spent.
func (r *Renderer) tick(now time.Time) {
	r.mu.Lock()
	if !r.active || r.cfg == nil {
		r.mu.Unlock()
		return
	}
	if !r.lastFrame.IsZero() && now.Sub(r.lastFrame) < r.interval && r.skipped < r.maxSkip {
		r.skipped++
		r.mu.Unlock()
		return
	}
	r.lastFrame = now
	r.skipped = 0
	cfg := *r.cfg
	r.mu.Unlock()

	r.surface.RenderFrame(Frame{Heights: BarHeights(r.source.Bins(), cfg)})
}

func (r *Renderer) drawIdle(cfg BarConfig) {
	r.surface.RenderFrame(Frame{
		Heights: IdleHeights(cfg.BarCount),
		Idle:    true,
		Label:   idleLabel,
	})
}
