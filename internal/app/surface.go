package app

import "go.aimuz.me/sayclip/viz"

// eventSurface forwards visualization geometry and frames to the
// webview as events; the frontend does the actual canvas drawing.
type eventSurface struct {
	emit func(name string, data any)
}

func (s *eventSurface) ApplyConfig(cfg viz.BarConfig) {
	s.emit(EventVizConfig, cfg)
}

func (s *eventSurface) RenderFrame(frame viz.Frame) {
	s.emit(EventVizFrame, frame)
}
