package session

import (
	"context"
	"sync"
	"time"

	"github.com/echtwell/echt-crm/internal/entity"
)

// MemoryStore is the process-local fallback used in tests and single-instance
// local runs. State is gone on restart and invisible to other replicas.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]entity.ConversationSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]entity.ConversationSession),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Get(ctx context.Context, phone string) (*entity.ConversationSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[phone]
	if !ok {
		return nil, ErrNotFound
	}
	cp := s
	return &cp, nil
}

func (m *MemoryStore) Put(ctx context.Context, s *entity.ConversationSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.UpdatedAt = time.Now().UTC()
	m.sessions[s.Phone] = *s
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, phone)
	return nil
}
