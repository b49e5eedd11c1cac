// Package hotkey provides a global keyboard shortcut for toggling
// recording while the window is unfocused.
package hotkey

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	hook "github.com/robotn/gohook"
)

// debounce suppresses key-repeat retriggers of the combination.
const debounce = 500 * time.Millisecond

// Manager owns the global keyboard hook. Only one hook may run per
// process.
type Manager struct {
	keys     []string
	onToggle func()

	mu         sync.Mutex
	running    bool
	registered bool
	lastFire   time.Time
}

// NewManager creates a manager that fires onToggle when all keys are
// pressed together.
func NewManager(keys []string, onToggle func()) *Manager {
	return &Manager{keys: keys, onToggle: onToggle}
}

// Start installs the hook and begins listening. Calling it while
// already running is a no-op.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return nil
	}
	if len(m.keys) == 0 {
		return fmt.Errorf("no hotkey keys configured")
	}

	// Registrations persist across Start/End cycles, so register once.
	if !m.registered {
		hook.Register(hook.KeyDown, m.keys, m.handle)
		m.registered = true
	}

	events := hook.Start()
	m.running = true
	go func() {
		<-hook.Process(events)
	}()

	slog.Info("global hotkey enabled", "keys", m.keys)
	return nil
}

// Stop removes the hook.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	hook.End()
	m.running = false
	slog.Info("global hotkey disabled")
}

// Running reports whether the hook is installed.
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) handle(_ hook.Event) {
	m.mu.Lock()
	if time.Since(m.lastFire) < debounce {
		m.mu.Unlock()
		return
	}
	m.lastFire = time.Now()
	cb := m.onToggle
	m.mu.Unlock()

	if cb != nil {
		cb()
	}
}
