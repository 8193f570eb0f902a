package session

import (
	"context"
	"sync"

	"bookline/models"
)

// MemoryStore is an in-process Store for tests and single-node development.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.SearchSession
	lastID   string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.SearchSession)}
}

func (s *MemoryStore) Put(ctx context.Context, sess *models.SearchSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.SessionID] = *sess
	s.lastID = sess.SessionID
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*models.SearchSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Last(ctx context.Context) (*models.SearchSession, error) {
	s.mu.RLock()
	lastID := s.lastID
	s.mu.RUnlock()
	if lastID == "" {
		return nil, ErrNotFound
	}
	return s.Get(ctx, lastID)
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	if s.lastID == sessionID {
		s.lastID = ""
	}
	return nil
}
