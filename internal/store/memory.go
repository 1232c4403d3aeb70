package store

import (
	"sync"

	"session-planner/internal/models"
)

// Memory is an in-memory SessionStore used by tests and local development.
// Records are copied on the way in and out, so callers always observe whole
// records, mirroring the transactional behavior of the SQLite store.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]models.Session)}
}

func (m *Memory) GetAll() ([]models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Session, 0, len(m.sessions))
	for id := range m.sessions {
		out = append(out, clone(m.sessions[id]))
	}
	return out, nil
}

func (m *Memory) Get(id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := clone(s)
	return &c, nil
}

func (m *Memory) Insert(s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = clone(*s)
	return nil
}

func (m *Memory) Update(s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = clone(*s)
	return nil
}

func (m *Memory) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

func clone(s models.Session) models.Session {
	attendees := make(models.AttendeeList, len(s.Attendees))
	copy(attendees, s.Attendees)
	s.Attendees = attendees
	return s
}
