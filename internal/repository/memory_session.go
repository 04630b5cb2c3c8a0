package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"invoiceflow/internal/domain"
)

// MemorySessionStore keeps conversation sessions in a mutex-guarded map.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.ConversationSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*domain.ConversationSession)}
}

func (s *MemorySessionStore) Create(_ context.Context, userID string) (*domain.ConversationSession, error) {
	now := time.Now().UTC()
	session := &domain.ConversationSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    domain.ConversationActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session, nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*domain.ConversationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *MemorySessionStore) Update(_ context.Context, session *domain.ConversationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return ErrSessionNotFound
	}
	session.Touch()
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}
