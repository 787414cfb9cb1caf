// Package session implements the concurrently-accessed registry of
// active web sessions.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"dsl-bot/internal/adapter"
	"dsl-bot/internal/dslctx"
)

// Session bundles everything one running web dialog owns: its adapter
// (so HTTP handlers can push input and drain output), its context, and
// bookkeeping timestamps.
type Session struct {
	ID        string
	BotName   string
	Adapter   *adapter.Web
	Context   *dslctx.Context
	CreatedAt time.Time
	LastUsed  time.Time
}

// Manager is the registry HTTP collaborators depend on. No core
// component requires a process-wide singleton; callers construct and
// pass one explicitly.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: map[string]*Session{}}
}

// Create allocates a new session with a fresh adapter and context and
// registers it under a generated id.
func (m *Manager) Create(botName string) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		BotName:   botName,
		Adapter:   adapter.NewWeb(),
		Context:   dslctx.New(),
		CreatedAt: now,
		LastUsed:  now,
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes the session and closes its adapter's inbound queue so
// a worker blocked in Receive can observe end-of-input and terminate.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if ok {
		s.Adapter.Close()
	}
}

// DeleteAll discards every active session, used when the active script
// is switched.
func (m *Manager) DeleteAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = map[string]*Session{}
	m.mu.Unlock()
	for _, s := range all {
		s.Adapter.Close()
	}
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
