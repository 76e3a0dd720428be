package note

import "sync"

// Manager hands out one Session per user, created lazily and dropped on
// sign-out.
type Manager struct {
	mu         sync.Mutex
	sessions   map[uint64]*Session
	repo       Repository
	summarizer Summarizer
}

func NewManager(repo Repository, summarizer Summarizer) *Manager {
	return &Manager{
		sessions:   make(map[uint64]*Session),
		repo:       repo,
		summarizer: summarizer,
	}
}

func (m *Manager) Get(ownerID uint64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[ownerID]
	if !ok {
		s = NewSession(ownerID, m.repo, m.summarizer)
		m.sessions[ownerID] = s
	}
	return s
}

func (m *Manager) Drop(ownerID uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, ownerID)
}
