// Package viz computes the 32-bar frequency visualization: cached bar
// geometry per canvas size and the render loop that turns analysis
// frames into bar heights for the frontend to paint.
package viz

import "math"

const (
	// BarCount is the number of bars in the visualization.
	BarCount = 32
	// heightScale leaves headroom above the tallest bar.
	heightScale = 0.9
)

// GradientStop is one color stop of the bar fill gradient.
type GradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// BarConfig is the cached drawing geometry for one canvas size. It is
// rebuilt only when the canvas size or pixel ratio actually changes.
type BarConfig struct {
	Width     float64        `json:"width"`  // CSS pixels
	Height    float64        `json:"height"` // CSS pixels
	DPR       float64        `json:"dpr"`
	BarCount  int            `json:"barCount"`
	BarWidth  float64        `json:"barWidth"`
	BinCount  int            `json:"binCount"`
	GroupSize int            `json:"groupSize"`
	Gradient  []GradientStop `json:"gradient"`
}

// NewBarConfig computes bar geometry for a canvas of the given CSS pixel
// size and device pixel ratio. Bars tile the full width; bins are split
// into equal groups with the division remainder left to the last bar.
func NewBarConfig(width, height, dpr float64, binCount int) BarConfig {
	if dpr <= 0 {
		dpr = 1
	}
	groupSize := binCount / BarCount
	if groupSize < 1 {
		groupSize = 1
	}
	return BarConfig{
		Width:     width,
		Height:    height,
		DPR:       dpr,
		BarCount:  BarCount,
		BarWidth:  width / BarCount,
		BinCount:  binCount,
		GroupSize: groupSize,
		Gradient:  barGradient(),
	}
}

func barGradient() []GradientStop {
	return []GradientStop{
		{Offset: 0, Color: "#22c55e"},
		{Offset: 0.6, Color: "#eab308"},
		{Offset: 1, Color: "#ef4444"},
	}
}

// BarHeights folds a frame of frequency bins into per-bar heights in CSS
// pixels. Each bar averages its group of bins; the last bar absorbs any
// remainder bins so the whole frame is covered.
func BarHeights(bins []byte, cfg BarConfig) []float64 {
	heights := make([]float64, cfg.BarCount)
	if len(bins) == 0 || cfg.GroupSize == 0 {
		return heights
	}

	for bar := 0; bar < cfg.BarCount; bar++ {
		start := bar * cfg.GroupSize
		if start >= len(bins) {
			break
		}
		end := start + cfg.GroupSize
		if bar == cfg.BarCount-1 || end > len(bins) {
			end = len(bins)
		}

		sum := 0
		for _, v := range bins[start:end] {
			sum += int(v)
		}
		avg := float64(sum) / float64(end-start)
		heights[bar] = avg / 255 * cfg.Height * heightScale
	}
	return heights
}

// IdleHeights returns the resting pattern drawn when no recording is
// active: a shallow sine ripple across the bars.
func IdleHeights(barCount int) []float64 {
	heights := make([]float64, barCount)
	for i := range heights {
		heights[i] = 3 + 2*math.Sin(float64(i)*0.3)
	}
	return heights
}
