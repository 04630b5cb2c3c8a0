package service

import (
	"context"
	"fmt"

	"invoiceflow/internal/agent"
	"invoiceflow/internal/domain"
	"invoiceflow/internal/repository"
)

type conversationService struct {
	sessions repository.SessionStore
	agents   *AgentRegistry
}

// NewConversationService wires the session store to the agent registry.
func NewConversationService(sessions repository.SessionStore, agents *AgentRegistry) ConversationService {
	return &conversationService{sessions: sessions, agents: agents}
}

func (s *conversationService) HandleTurn(ctx context.Context, userInput, sessionID, userID string) (*TurnResult, error) {
	var session *domain.ConversationSession
	var err error
	if sessionID != "" {
		session, err = s.sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", sessionID, err)
		}
	} else {
		session, err = s.sessions.Create(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("creating session: %w", err)
		}
	}

	entry := s.agents.Entry(session.ID, session.UserID)
	entry.Mu.Lock()
	defer entry.Mu.Unlock()

	resp := entry.Agent.ProcessTurn(ctx, userInput)

	session.Record = entry.Agent.Record()
	if resp.Action == agent.ActionCreated {
		session.Status = domain.ConversationCompleted
	}
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}

	result := &TurnResult{
		SessionID:    session.ID,
		Response:     resp,
		SessionUsage: *entry.Agent.Usage(),
	}
	if resp.Action == agent.ActionReady {
		result.Preview = entry.Agent.Preview()
	}
	return result, nil
}
