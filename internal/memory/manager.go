package memory

import (
	"sync"
	"time"
)

const defaultIdleTTL = 2 * time.Hour

type session struct {
	window   *Window
	lastSeen time.Time
}

// Manager holds one conversation window per session ID so concurrent users
// never interleave into the same history. Sessions are created on first use
// and dropped after sitting idle past the TTL.
type Manager struct {
	mu       sync.Mutex
	capacity int
	idleTTL  time.Duration
	sessions map[string]*session
}

func NewManager(capacity int) *Manager {
	return &Manager{
		capacity: capacity,
		idleTTL:  defaultIdleTTL,
		sessions: make(map[string]*session),
	}
}

// Get returns the window for the session, creating it if needed.
func (m *Manager) Get(sessionID string) *Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{window: NewWindow(m.capacity)}
		m.sessions[sessionID] = s
	}
	s.lastSeen = time.Now()
	return s.window
}

// Reset gives the session a fresh empty window.
func (m *Manager) Reset(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		s.window.Reset()
		s.lastSeen = time.Now()
	}
}

// Sweep drops sessions idle past the TTL and reports how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.idleTTL)
	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps on the given interval until stop is closed.
func (m *Manager) RunSweeper(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-stop:
			return
		}
	}
}
