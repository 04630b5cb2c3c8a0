package service

import (
	"context"
	"fmt"

	"invoiceflow/internal/domain"
	"invoiceflow/internal/repository"
)

type sessionService struct {
	sessions repository.SessionStore
	agents   *AgentRegistry
}

// NewSessionService wires session inspection and reset.
func NewSessionService(sessions repository.SessionStore, agents *AgentRegistry) SessionService {
	return &sessionService{sessions: sessions, agents: agents}
}

func (s *sessionService) Info(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}

	entry := s.agents.Entry(session.ID, session.UserID)
	entry.Mu.Lock()
	defer entry.Mu.Unlock()

	record := entry.Agent.Record()
	return &SessionInfo{
		SessionID:     session.ID,
		Status:        session.Status,
		CreatedAt:     session.CreatedAt,
		UpdatedAt:     session.UpdatedAt,
		InvoiceStatus: record.Status(),
		MissingFields: record.MissingFields(),
		Usage:         *entry.Agent.Usage(),
	}, nil
}

// Reset clears the invoice record for a new collection round while
// keeping cumulative usage totals.
func (s *sessionService) Reset(ctx context.Context, sessionID string) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("session %s: %w", sessionID, err)
	}

	entry := s.agents.Entry(session.ID, session.UserID)
	entry.Mu.Lock()
	defer entry.Mu.Unlock()

	entry.Agent.Reset()
	session.Record = domain.Invoice{}
	session.Status = domain.ConversationActive
	if err := s.sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	return nil
}
