package recording

import (
	"testing"
	"time"
)

// TestFormatClock tests MM:SS rendering, including the no-hour-rollover
// behavior for recordings of an hour or longer.
func TestFormatClock(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"zero", 0, "00:00"},
		{"sub-second", 900 * time.Millisecond, "00:00"},
		{"one second", time.Second, "00:01"},
		{"almost a minute", 59999 * time.Millisecond, "00:59"},
		{"one minute one second", 61000 * time.Millisecond, "01:01"},
		{"ten minutes", 10 * time.Minute, "10:00"},
		{"one hour stays in minutes", 3600000 * time.Millisecond, "60:00"},
		{"negative clamps to zero", -5 * time.Second, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClock(tt.elapsed); got != tt.want {
				t.Errorf("FormatClock(%v) = %q, want %q", tt.elapsed, got, tt.want)
			}
		})
	}
}
